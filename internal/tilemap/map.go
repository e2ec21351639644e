// Package tilemap provides the editable tile grid: a width×height array of
// cells, change notification, template-set dependency tracking and the
// usage probe.
//
// A Map is not safe for concurrent use. All calls, including the callbacks
// it runs, happen on the caller's goroutine.
package tilemap

import (
	"fmt"

	"github.com/samdwyer/wallsandholes/internal/tileset"
)

const (
	// Default map dimensions
	DefaultWidth  = 32
	DefaultHeight = 16
)

// Map is a rectangular grid of cells.
type Map struct {
	width  int
	height int
	cells  [][]*Cell // indexed [y][x]
	deps   []*tileset.Set

	cellChanged  []listener[func(x, y int)]
	resized      []listener[func()]
	mapChanged   []listener[func()]
	nextListener ListenerID

	probe  probeMode
	pinged bool
}

// New creates a map of empty cells. It panics if either dimension is below 1.
func New(width, height int) *Map {
	mustValidSize("New", width, height)

	m := &Map{
		width:  width,
		height: height,
		cells:  make([][]*Cell, height),
	}
	for y := range m.cells {
		m.cells[y] = make([]*Cell, width)
		for x := range m.cells[y] {
			m.cells[y][x] = m.newCell(x, y)
		}
	}
	return m
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// Contains returns true if (x, y) lies on the map.
func (m *Map) Contains(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// CellAt returns the cell at (x, y). It panics if (x, y) is out of range.
func (m *Map) CellAt(x, y int) *Cell {
	m.mustContain("CellAt", x, y)
	return m.cells[y][x]
}

// TemplateAt returns the template referenced at (x, y), or nil for an empty
// cell. It panics if (x, y) is out of range.
func (m *Map) TemplateAt(x, y int) *tileset.Template {
	m.mustContain("TemplateAt", x, y)
	return m.cells[y][x].template
}

// SetCell replaces the template reference at (x, y); t may be nil. It always
// notifies cell-changed then map-changed, even when the reference is
// unchanged. It panics if (x, y) is out of range.
func (m *Map) SetCell(x, y int, t *tileset.Template) {
	m.mustContain("SetCell", x, y)
	m.cells[y][x].reset(t)
}

// ClearCell empties the cell at (x, y).
func (m *Map) ClearCell(x, y int) {
	m.SetCell(x, y, nil)
}

// Clear empties every cell in row-major order, notifying for each.
func (m *Map) Clear() {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			m.ClearCell(x, y)
		}
	}
}

// Each calls fn for every cell in row-major order.
func (m *Map) Each(fn func(c *Cell)) {
	for _, row := range m.cells {
		for _, c := range row {
			fn(c)
		}
	}
}

// Resize changes the map size around the top-left corner. Cells inside both
// the old and new bounds keep their templates; new cells are empty. Cells
// outside the new bounds are discarded. It panics if either dimension is
// below 1.
func (m *Map) Resize(width, height int) {
	mustValidSize("Resize", width, height)

	cells := make([][]*Cell, height)
	for y := range cells {
		cells[y] = make([]*Cell, width)
		for x := range cells[y] {
			if x < m.width && y < m.height {
				cells[y][x] = m.cells[y][x]
			} else {
				cells[y][x] = m.newCell(x, y)
			}
		}
	}

	// Dropped cells must stop answering pings.
	for y, row := range m.cells {
		for x, c := range row {
			if x >= width || y >= height {
				c.release()
			}
		}
	}

	m.cells = cells
	m.width = width
	m.height = height
	m.emitResized()
}

// Release drops every cell's ping subscription so that shared templates stop
// reaching this map. Call it when the map is discarded. Cells keep their
// templates, but probes report nothing used until a cell is set again.
func (m *Map) Release() {
	m.Each(func(c *Cell) { c.release() })
}

func (m *Map) newCell(x, y int) *Cell {
	return &Cell{
		x:       x,
		y:       y,
		changed: m.emitCellChanged,
		pinged:  m.cellPinged,
	}
}

func (m *Map) mustContain(op string, x, y int) {
	if !m.Contains(x, y) {
		panic(fmt.Sprintf("tilemap: %s(%d, %d) out of range for %dx%d map", op, x, y, m.width, m.height))
	}
}

func mustValidSize(op string, width, height int) {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("tilemap: %s: invalid map size %dx%d", op, width, height))
	}
}
