package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/samdwyer/wallsandholes/internal/tilemap"
	"github.com/samdwyer/wallsandholes/internal/tileset"
)

// ErrUnknownTool is returned when activating a tool that was never registered.
var ErrUnknownTool = errors.New("unknown tool")

// Manager owns the registered tools and forwards pointer events to the
// active one.
type Manager struct {
	tools  map[string]Tool
	order  []string
	active string

	m        *tilemap.Map
	template *tileset.Template
}

// NewManager creates a manager with no tools.
func NewManager() *Manager {
	return &Manager{tools: make(map[string]Tool)}
}

// Register adds t under name, bound to the current map and template.
// The first registered tool becomes active.
func (mg *Manager) Register(name string, t Tool) {
	if _, ok := mg.tools[name]; !ok {
		mg.order = append(mg.order, name)
	}
	mg.tools[name] = t
	t.SetMap(mg.m)
	t.SetTemplate(mg.template)
	if mg.active == "" {
		mg.active = name
	}
}

// Names returns the registered tool names in registration order.
func (mg *Manager) Names() []string {
	out := make([]string, len(mg.order))
	copy(out, mg.order)
	return out
}

// Activate makes the named tool active, deactivating the previous one.
func (mg *Manager) Activate(name string) error {
	if _, ok := mg.tools[name]; !ok {
		return fmt.Errorf("activate %q: %w", name, ErrUnknownTool)
	}
	if name == mg.active {
		return nil
	}
	if prev := mg.Active(); prev != nil {
		prev.Deactivate()
	}
	mg.active = name
	return nil
}

// Active returns the active tool, or nil if none is registered.
func (mg *Manager) Active() Tool {
	return mg.tools[mg.active]
}

// ActiveName returns the active tool's name.
func (mg *Manager) ActiveName() string {
	return mg.active
}

// SetMap binds every tool to m.
func (mg *Manager) SetMap(m *tilemap.Map) {
	mg.m = m
	for _, name := range mg.order {
		mg.tools[name].SetMap(m)
	}
}

// SetTemplate selects the paint template for every tool.
func (mg *Manager) SetTemplate(t *tileset.Template) {
	mg.template = t
	for _, name := range mg.order {
		mg.tools[name].SetTemplate(t)
	}
}

// Template returns the selected paint template.
func (mg *Manager) Template() *tileset.Template {
	return mg.template
}

// CellClicked forwards a click to the active tool.
func (mg *Manager) CellClicked(ctx context.Context, x, y int) {
	if t := mg.Active(); t != nil {
		t.CellClicked(ctx, x, y)
	}
}

// CellHovered forwards a hover to the active tool.
func (mg *Manager) CellHovered(x, y int) {
	if t := mg.Active(); t != nil {
		t.CellHovered(x, y)
	}
}

// MouseExitedMap tells the active tool the pointer left the map.
func (mg *Manager) MouseExitedMap() {
	if t := mg.Active(); t != nil {
		t.MouseExitedMap()
	}
}

// Overlay returns the active tool's preview, or nil.
func (mg *Manager) Overlay() *Overlay {
	if t := mg.Active(); t != nil {
		return t.Overlay()
	}
	return nil
}
