package tool

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wallsandholes/internal/telemetry"
	"github.com/samdwyer/wallsandholes/internal/tilemap"
)

// neighbors are the 4-connected offsets visited by the fill, in order.
var neighbors = [4]tilemap.Point{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
}

// Selection is a set of map coordinates.
type Selection map[tilemap.Point]struct{}

// Contains returns true if (x, y) is selected.
func (s Selection) Contains(x, y int) bool {
	_, ok := s[tilemap.Point{X: x, Y: y}]
	return ok
}

// Points returns the selected coordinates in row-major order.
func (s Selection) Points() []tilemap.Point {
	out := make([]tilemap.Point, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b tilemap.Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

// Fill paints the connected region of matching cells around the clicked
// cell. Two cells match when both are empty or both reference the same
// template.
//
// The last computed region is cached and reused while the pointer stays
// inside it. Any map change the tool did not make discards the cache.
type Fill struct {
	base

	selection Selection
	overlay   *Overlay
	listener  tilemap.ListenerID
}

// NewFill creates a fill tool with no map.
func NewFill() *Fill {
	return &Fill{}
}

// SetMap binds the tool to m and discards the cached selection.
func (f *Fill) SetMap(m *tilemap.Map) {
	f.detach()
	f.m = m
	f.invalidateSelection()
	f.clearOverlay()
	f.attach()
}

// Selection returns the cached selection. Callers must not modify it.
func (f *Fill) Selection() Selection {
	return f.selection
}

// Overlay returns the current fill preview, or nil.
func (f *Fill) Overlay() *Overlay {
	return f.overlay
}

// ComputeSelection returns the region that a fill at (x, y) would paint.
// The cached selection is reused if it already contains (x, y). It panics
// if (x, y) is out of range.
func (f *Fill) ComputeSelection(x, y int) Selection {
	if f.selection.Contains(x, y) {
		return f.selection
	}

	seed := f.m.CellAt(x, y)
	start := seed.Point()

	f.selection = Selection{}
	queue := []tilemap.Point{start}
	seen := map[tilemap.Point]struct{}{start: {}}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		f.selection[p] = struct{}{}
		current := f.m.CellAt(p.X, p.Y)

		for _, d := range neighbors {
			n := tilemap.Point{X: p.X + d.X, Y: p.Y + d.Y}
			if _, ok := seen[n]; ok {
				continue
			}
			if !f.m.Contains(n.X, n.Y) {
				continue
			}
			if !f.m.CellAt(n.X, n.Y).Matches(current) {
				continue
			}
			seen[n] = struct{}{}
			queue = append(queue, n)
		}
	}

	return f.selection
}

// CellHovered previews the fill at (x, y). Nothing changes while (x, y) is
// inside the current preview.
func (f *Fill) CellHovered(x, y int) {
	if f.m == nil || f.selection.Contains(x, y) {
		return
	}

	f.clearOverlay()
	sel := f.ComputeSelection(x, y)
	f.overlay = NewOverlay(sel.Points(), f.tint().Color())
}

// CellClicked fills the region at (x, y) with the current template.
func (f *Fill) CellClicked(ctx context.Context, x, y int) {
	if f.m == nil {
		return
	}
	f.Commit(ctx, x, y)
}

// Commit recomputes the region at (x, y) and sets every cell in it to the
// current template. Other listeners see each cell change; the tool itself
// ignores them. It returns the painted region.
func (f *Fill) Commit(ctx context.Context, x, y int) Selection {
	tracer := telemetry.Tracer("tool")
	_, span := tracer.Start(ctx, "fill.commit")
	defer span.End()

	f.clearOverlay()

	f.invalidateSelection()
	sel := f.ComputeSelection(x, y)

	f.detach()
	for p := range sel {
		f.m.SetCell(p.X, p.Y, f.template)
	}
	f.attach()

	span.SetAttributes(
		attribute.Int("fill.x", x),
		attribute.Int("fill.y", y),
		attribute.Int("fill.cells", len(sel)),
	)
	return sel
}

// MouseExitedMap drops the cached selection and preview.
func (f *Fill) MouseExitedMap() {
	f.invalidateSelection()
	f.clearOverlay()
}

// Deactivate drops the cached selection and preview.
func (f *Fill) Deactivate() {
	f.invalidateSelection()
	f.clearOverlay()
}

func (f *Fill) invalidateSelection() {
	f.selection = nil
}

func (f *Fill) clearOverlay() {
	f.overlay = nil
}

func (f *Fill) attach() {
	if f.m != nil {
		f.listener = f.m.OnMapChanged(f.invalidateSelection)
	}
}

func (f *Fill) detach() {
	if f.m != nil && f.listener != 0 {
		f.m.RemoveListener(f.listener)
		f.listener = 0
	}
}
