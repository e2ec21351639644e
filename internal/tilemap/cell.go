package tilemap

import "github.com/samdwyer/wallsandholes/internal/tileset"

// Point is a cell coordinate on the map.
type Point struct {
	X, Y int
}

// Cell is one grid position with an optional template reference. An empty
// cell (nil template) shows the default ground.
type Cell struct {
	x, y     int
	template *tileset.Template

	cancelPing func()
	changed    func(x, y int)
	pinged     func(x, y int)
}

// X returns the cell's column.
func (c *Cell) X() int { return c.x }

// Y returns the cell's row.
func (c *Cell) Y() int { return c.y }

// Point returns the cell's coordinate.
func (c *Cell) Point() Point { return Point{c.x, c.y} }

// Template returns the referenced template, or nil for an empty cell.
func (c *Cell) Template() *tileset.Template { return c.template }

// HasTemplate returns true if the cell references a template.
func (c *Cell) HasTemplate() bool { return c.template != nil }

// Matches returns true if both cells are empty or both reference the same
// template. Template fields are never compared.
func (c *Cell) Matches(other *Cell) bool {
	return c.template == other.template
}

// reset replaces the template reference, moves the ping subscription to the
// new template and reports the change.
func (c *Cell) reset(t *tileset.Template) {
	c.release()
	c.template = t
	if t != nil {
		c.cancelPing = t.OnPing(func() { c.pinged(c.x, c.y) })
	}
	c.changed(c.x, c.y)
}

// release stops listening for pings from the current template.
func (c *Cell) release() {
	if c.cancelPing != nil {
		c.cancelPing()
		c.cancelPing = nil
	}
}
