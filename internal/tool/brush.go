package tool

import (
	"context"

	"github.com/samdwyer/wallsandholes/internal/tilemap"
)

// Brush paints a single cell.
type Brush struct {
	base

	overlay *Overlay
}

// NewBrush creates a brush with no map.
func NewBrush() *Brush {
	return &Brush{}
}

// SetMap binds the brush to m.
func (b *Brush) SetMap(m *tilemap.Map) {
	b.m = m
	b.overlay = nil
}

// CellClicked paints (x, y) with the current template.
func (b *Brush) CellClicked(_ context.Context, x, y int) {
	if b.m == nil {
		return
	}
	b.m.SetCell(x, y, b.template)
}

// CellHovered previews the cell under the pointer.
func (b *Brush) CellHovered(x, y int) {
	if b.m == nil || !b.m.Contains(x, y) {
		b.overlay = nil
		return
	}
	b.overlay = NewOverlay([]tilemap.Point{{X: x, Y: y}}, b.tint().Color())
}

// MouseExitedMap drops the preview.
func (b *Brush) MouseExitedMap() { b.overlay = nil }

// Deactivate drops the preview.
func (b *Brush) Deactivate() { b.overlay = nil }

// Overlay returns the hovered-cell preview, or nil.
func (b *Brush) Overlay() *Overlay { return b.overlay }
