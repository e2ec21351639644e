// Package tileset provides tile templates and the sets that own them.
//
// Templates are compared by identity everywhere: two templates with equal
// fields are still different materials.
package tileset

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
)

// Property ranges accepted by the template setters.
const (
	MinHeight    = -1000.0
	MaxHeight    = 1000.0
	MinThickness = 0.1
	MaxThickness = 1.0
	MaxOffset    = 0.49
)

// Template is a tile type. It is owned by at most one Set and may be
// referenced by any number of map cells.
type Template struct {
	id        uuid.UUID
	name      string
	color     tcell.Color
	height    float64
	thickness float64
	posX      float64
	posY      float64

	set *Set

	pings  []pingListener
	nextID int
}

type pingListener struct {
	id int
	fn func()
}

// NewTemplate creates a full-thickness template at height 0 with a fresh ID.
func NewTemplate(name string, color tcell.Color) *Template {
	return &Template{
		id:        uuid.New(),
		name:      name,
		color:     color,
		thickness: MaxThickness,
	}
}

// ID returns the template's persistent identifier.
func (t *Template) ID() uuid.UUID { return t.id }

// Name returns the display name.
func (t *Template) Name() string { return t.name }

// Color returns the template's paint color.
func (t *Template) Color() tcell.Color { return t.color }

// Height returns the tile height.
func (t *Template) Height() float64 { return t.height }

// Thickness returns the tile thickness.
func (t *Template) Thickness() float64 { return t.thickness }

// Position returns the tile's offset from the cell center.
func (t *Template) Position() (x, y float64) { return t.posX, t.posY }

// Set returns the owning set, or nil if the template is unowned.
func (t *Template) Set() *Set { return t.set }

// SetName renames the template.
func (t *Template) SetName(name string) {
	t.name = name
	t.touch()
}

// SetColor changes the paint color.
func (t *Template) SetColor(c tcell.Color) {
	t.color = c
	t.touch()
}

// SetHeight changes the height, clamped to [MinHeight, MaxHeight].
func (t *Template) SetHeight(h float64) {
	t.height = clamp(h, MinHeight, MaxHeight)
	t.touch()
}

// SetThickness changes the thickness, clamped to [MinThickness, MaxThickness].
func (t *Template) SetThickness(v float64) {
	t.thickness = clamp(v, MinThickness, MaxThickness)
	t.touch()
}

// SetPosition changes the offset, each axis clamped to ±MaxOffset.
func (t *Template) SetPosition(x, y float64) {
	t.posX = clamp(x, -MaxOffset, MaxOffset)
	t.posY = clamp(y, -MaxOffset, MaxOffset)
	t.touch()
}

// OnPing registers fn to run on every Ping. Map cells register while they
// hold the template and cancel when they let go of it.
func (t *Template) OnPing(fn func()) (cancel func()) {
	t.nextID++
	id := t.nextID
	t.pings = append(t.pings, pingListener{id: id, fn: fn})

	return func() {
		kept := make([]pingListener, 0, len(t.pings))
		for _, l := range t.pings {
			if l.id != id {
				kept = append(kept, l)
			}
		}
		t.pings = kept
	}
}

// Holders returns the number of registered ping listeners.
func (t *Template) Holders() int { return len(t.pings) }

// Ping broadcasts a discovery signal to every current holder.
func (t *Template) Ping() {
	for _, l := range t.pings {
		l.fn()
	}
}

// String returns the name and short ID for debugging.
func (t *Template) String() string {
	return fmt.Sprintf("%s(%s)", t.name, t.id.String()[:8])
}

func (t *Template) touch() {
	if t.set != nil {
		t.set.setSaved(false)
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
