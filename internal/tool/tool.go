// Package tool implements the pointer-driven map editing tools.
//
// Tools receive discrete cell coordinates; decoding raw input devices is the
// caller's job. Like the map they edit, tools are not safe for concurrent use.
package tool

import (
	"context"

	"github.com/samdwyer/wallsandholes/internal/tilemap"
	"github.com/samdwyer/wallsandholes/internal/tileset"
)

// Tool is a map editing tool driven by pointer events.
type Tool interface {
	// SetMap binds the tool to m, dropping any state tied to the old map.
	SetMap(m *tilemap.Map)
	// SetTemplate selects the template the tool paints with; nil erases.
	SetTemplate(t *tileset.Template)
	// CellClicked applies the tool at (x, y).
	CellClicked(ctx context.Context, x, y int)
	// CellHovered previews the tool at (x, y).
	CellHovered(x, y int)
	// MouseExitedMap drops any preview.
	MouseExitedMap()
	// Deactivate drops all transient state when another tool takes over.
	Deactivate()
	// Overlay returns the current preview, or nil.
	Overlay() *Overlay
}

// base holds the state every tool shares.
type base struct {
	m        *tilemap.Map
	template *tileset.Template
}

// Map returns the map the tool edits.
func (b *base) Map() *tilemap.Map { return b.m }

// Template returns the paint template; nil means erase.
func (b *base) Template() *tileset.Template { return b.template }

// SetTemplate selects the paint template.
func (b *base) SetTemplate(t *tileset.Template) { b.template = t }

// tint returns the preview color for the paint template. Erasing previews
// with the ground color.
func (b *base) tint() *tileset.Template {
	if b.template == nil {
		return tileset.Ground()
	}
	return b.template
}
