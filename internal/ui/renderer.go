package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wallsandholes/internal/tilemap"
	"github.com/samdwyer/wallsandholes/internal/tileset"
)

// cellWidth is the number of terminal columns drawn per map cell, so cells
// look roughly square.
const cellWidth = 2

// Overlay is a translucent preview drawn over map cells.
type Overlay interface {
	Covers(x, y int) bool
	Blend(under tcell.Color) tcell.Color
}

// Renderer handles drawing the map to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the map, the tool preview and a status line below the map.
func (r *Renderer) Render(m *tilemap.Map, overlay Overlay, status string) {
	r.screen.Clear()

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			style := r.getCellStyle(m.CellAt(x, y), overlay)
			for i := 0; i < cellWidth; i++ {
				r.screen.SetContent(x*cellWidth+i, y, ' ', style)
			}
		}
	}

	r.RenderMessage(status, m.Height()+1)
	r.screen.Show()
}

// CellAt converts a screen position to map coordinates. The result may lie
// outside the map.
func (r *Renderer) CellAt(screenX, screenY int) (x, y int) {
	return screenX / cellWidth, screenY
}

// getCellStyle returns the style for a cell, with the overlay blended in.
func (r *Renderer) getCellStyle(c *tilemap.Cell, overlay Overlay) tcell.Style {
	t := c.Template()
	if t == nil {
		t = tileset.Ground()
	}
	bg := t.Color()
	if overlay != nil && overlay.Covers(c.X(), c.Y()) {
		bg = overlay.Blend(bg)
	}
	return tcell.StyleDefault.Background(bg)
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
