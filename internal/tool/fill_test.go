package tool

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/samdwyer/wallsandholes/internal/tilemap"
	"github.com/samdwyer/wallsandholes/internal/tileset"
)

func pts(coords ...[2]int) []tilemap.Point {
	out := make([]tilemap.Point, len(coords))
	for i, c := range coords {
		out[i] = tilemap.Point{X: c[0], Y: c[1]}
	}
	return out
}

// newFill returns a fill tool bound to m and painting with t.
func newFill(m *tilemap.Map, t *tileset.Template) *Fill {
	f := NewFill()
	f.SetMap(m)
	f.SetTemplate(t)
	return f
}

// plus builds a 3x3 map with A on the center column and row.
//
//	. A .
//	A A A
//	. A .
func plus(a *tileset.Template) *tilemap.Map {
	m := tilemap.New(3, 3)
	for _, p := range pts([2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1}, [2]int{1, 2}) {
		m.SetCell(p.X, p.Y, a)
	}
	return m
}

func TestComputeSelection(t *testing.T) {
	a := tileset.NewTemplate("A", tcell.ColorRed)

	tests := []struct {
		name string
		x, y int
		want []tilemap.Point
	}{
		{
			name: "template region",
			x:    1, y: 1,
			want: pts([2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1}, [2]int{1, 2}),
		},
		{
			name: "isolated empty corner",
			x:    0, y: 0,
			want: pts([2]int{0, 0}),
		},
		{
			name: "diagonal corners stay separate",
			x:    2, y: 2,
			want: pts([2]int{2, 2}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFill(plus(a), nil)
			got := f.ComputeSelection(tt.x, tt.y).Points()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Selection mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeSelectionEmptyNeighborsDoNotBridge(t *testing.T) {
	a := tileset.NewTemplate("A", tcell.ColorRed)
	m := tilemap.New(3, 1)
	m.SetCell(0, 0, a)
	m.SetCell(2, 0, a)

	f := newFill(m, nil)
	if diff := cmp.Diff(pts([2]int{0, 0}), f.ComputeSelection(0, 0).Points()); diff != "" {
		t.Errorf("Selection mismatch (-want +got):\n%s", diff)
	}

	f = newFill(m, nil)
	if diff := cmp.Diff(pts([2]int{1, 0}), f.ComputeSelection(1, 0).Points()); diff != "" {
		t.Errorf("Selection mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeSelectionUsesIdentity(t *testing.T) {
	a := tileset.NewTemplate("Wall", tcell.ColorRed)
	twin := tileset.NewTemplate("Wall", tcell.ColorRed)
	twin.SetHeight(a.Height())

	m := tilemap.New(2, 1)
	m.SetCell(0, 0, a)
	m.SetCell(1, 0, twin)

	f := newFill(m, nil)
	if got := len(f.ComputeSelection(0, 0)); got != 1 {
		t.Errorf("Templates with equal fields must not join a region, got %d cells", got)
	}
}

func TestComputeSelectionWholeEmptyMap(t *testing.T) {
	m := tilemap.New(5, 4)
	f := newFill(m, nil)

	sel := f.ComputeSelection(2, 3)
	if len(sel) != 20 {
		t.Errorf("Expected all 20 cells selected, got %d", len(sel))
	}
}

func TestComputeSelectionIsDeterministic(t *testing.T) {
	a := tileset.NewTemplate("A", tcell.ColorRed)
	m := plus(a)

	first := newFill(m, nil).ComputeSelection(1, 0).Points()
	second := newFill(m, nil).ComputeSelection(1, 2).Points()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Same region from different seeds should match (-first +second):\n%s", diff)
	}
}

func TestComputeSelectionReusesCache(t *testing.T) {
	a := tileset.NewTemplate("A", tcell.ColorRed)
	f := newFill(plus(a), nil)

	sel := f.ComputeSelection(1, 1)
	sel[tilemap.Point{X: 9, Y: 9}] = struct{}{} // marker

	again := f.ComputeSelection(2, 1)
	if !again.Contains(9, 9) {
		t.Error("A seed inside the cached selection should reuse it")
	}

	other := f.ComputeSelection(0, 0)
	if other.Contains(9, 9) {
		t.Error("A seed outside the cached selection should recompute")
	}
}

func TestExternalChangeInvalidatesSelection(t *testing.T) {
	a := tileset.NewTemplate("A", tcell.ColorRed)
	m := plus(a)
	f := newFill(m, nil)

	f.ComputeSelection(1, 1)
	m.SetCell(0, 0, a)

	if f.Selection() != nil {
		t.Error("A change the tool did not make should drop the cached selection")
	}
	if got := len(f.ComputeSelection(1, 1)); got != 6 {
		t.Errorf("Expected recomputed region of 6 cells, got %d", got)
	}
}

func TestExternalResizeInvalidatesSelection(t *testing.T) {
	m := tilemap.New(2, 2)
	f := newFill(m, nil)
	f.ComputeSelection(0, 0)

	m.Resize(3, 3)

	if f.Selection() != nil {
		t.Error("Resize should drop the cached selection")
	}
}

func TestCommit(t *testing.T) {
	a := tileset.NewTemplate("A", tcell.ColorRed)
	b := tileset.NewTemplate("B", tcell.ColorBlue)
	m := plus(a)

	var changed []tilemap.Point
	m.OnCellChanged(func(x, y int) { changed = append(changed, tilemap.Point{X: x, Y: y}) })

	f := newFill(m, b)
	sel := f.Commit(context.Background(), 1, 1)

	if len(sel) != 5 || len(changed) != 5 {
		t.Fatalf("Expected 5 cells painted and notified, got %d painted, %d notified", len(sel), len(changed))
	}
	for p := range sel {
		if m.TemplateAt(p.X, p.Y) != b {
			t.Errorf("Cell %v should hold B", p)
		}
	}
	for _, p := range pts([2]int{0, 0}, [2]int{2, 0}, [2]int{0, 2}, [2]int{2, 2}) {
		if m.TemplateAt(p.X, p.Y) != nil {
			t.Errorf("Corner %v should stay empty", p)
		}
	}
	if m.TemplateUsed(a) {
		t.Error("A should no longer be used after the fill")
	}
}

func TestCommitEmptyMap(t *testing.T) {
	a := tileset.NewTemplate("A", tcell.ColorRed)
	m := tilemap.New(3, 3)

	sel := newFill(m, a).Commit(context.Background(), 1, 1)

	if len(sel) != 9 {
		t.Errorf("Expected 9 cells painted, got %d", len(sel))
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if m.TemplateAt(x, y) != a {
				t.Errorf("Cell (%d,%d) should hold A", x, y)
			}
		}
	}
}

func TestCommitKeepsOwnSelection(t *testing.T) {
	a := tileset.NewTemplate("A", tcell.ColorRed)
	b := tileset.NewTemplate("B", tcell.ColorBlue)
	f := newFill(plus(a), b)

	f.Commit(context.Background(), 1, 1)

	if diff := cmp.Diff(
		pts([2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1}, [2]int{1, 2}),
		f.Selection().Points(),
	); diff != "" {
		t.Errorf("Cached selection should be the painted region (-want +got):\n%s", diff)
	}
	if f.Overlay() != nil {
		t.Error("Commit should clear the preview")
	}
}

func TestCommitIdempotent(t *testing.T) {
	a := tileset.NewTemplate("A", tcell.ColorRed)
	b := tileset.NewTemplate("B", tcell.ColorBlue)
	m := plus(a)

	newFill(m, b).Commit(context.Background(), 1, 1)
	before := snapshot(m)
	newFill(m, b).Commit(context.Background(), 1, 1)

	after := snapshot(m)
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Second identical fill changed cell %d", i)
		}
	}
}

func TestCommitErase(t *testing.T) {
	a := tileset.NewTemplate("A", tcell.ColorRed)
	m := plus(a)

	newFill(m, nil).Commit(context.Background(), 1, 0)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if m.TemplateAt(x, y) != nil {
				t.Errorf("Cell (%d,%d) should be empty after erasing fill", x, y)
			}
		}
	}
}

func TestCommitInvalidatesOtherFill(t *testing.T) {
	a := tileset.NewTemplate("A", tcell.ColorRed)
	m := plus(a)
	watcher := newFill(m, nil)
	watcher.ComputeSelection(0, 0)

	newFill(m, a).Commit(context.Background(), 1, 1)

	if watcher.Selection() != nil {
		t.Error("Another tool's fill should invalidate this tool's selection")
	}
}

func TestCellHovered(t *testing.T) {
	a := tileset.NewTemplate("A", tcell.NewRGBColor(200, 0, 0))
	f := newFill(plus(a), a)

	f.CellHovered(1, 1)
	o := f.Overlay()
	if o.Len() != 5 {
		t.Fatalf("Expected overlay over 5 cells, got %d", o.Len())
	}
	if !o.Covers(1, 0) || o.Covers(0, 0) {
		t.Error("Overlay should cover exactly the selection")
	}

	// Moving inside the region keeps the same preview
	f.CellHovered(2, 1)
	if f.Overlay() != o {
		t.Error("Hovering inside the selection should not rebuild the overlay")
	}

	f.CellHovered(0, 0)
	if f.Overlay() == o || f.Overlay().Len() != 1 {
		t.Error("Hovering outside the selection should rebuild the overlay")
	}
}

func TestMouseExitedAndDeactivate(t *testing.T) {
	tests := []struct {
		name string
		fn   func(f *Fill)
	}{
		{"mouse exited", func(f *Fill) { f.MouseExitedMap() }},
		{"deactivate", func(f *Fill) { f.Deactivate() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFill(tilemap.New(2, 2), nil)
			f.CellHovered(0, 0)

			tt.fn(f)

			if f.Selection() != nil || f.Overlay() != nil {
				t.Errorf("%s should drop selection and overlay", tt.name)
			}
		})
	}
}

func TestSetMapMovesListener(t *testing.T) {
	old := tilemap.New(2, 2)
	f := newFill(old, nil)
	f.SetMap(tilemap.New(2, 2))
	f.ComputeSelection(0, 0)

	old.SetCell(0, 0, nil)

	if f.Selection() == nil {
		t.Error("Changes to a previous map should not affect the selection")
	}
}

func TestOverlayBlend(t *testing.T) {
	black := tcell.NewRGBColor(0, 0, 0)
	white := tcell.NewRGBColor(255, 255, 255)
	o := NewOverlay(pts([2]int{0, 0}), white)

	r, g, b := o.Blend(black).RGB()
	if r != 100 || g != 100 || b != 100 {
		t.Errorf("Expected white at alpha 100 over black to give (100,100,100), got (%d,%d,%d)", r, g, b)
	}

	if o.Blend(white) != white {
		t.Error("Blending a color with itself should not change it")
	}
}

func TestNilOverlay(t *testing.T) {
	var o *Overlay
	if o.Covers(0, 0) || o.Len() != 0 {
		t.Error("nil overlay should cover nothing")
	}
}

func snapshot(m *tilemap.Map) []*tileset.Template {
	var out []*tileset.Template
	m.Each(func(c *tilemap.Cell) { out = append(out, c.Template()) })
	return out
}
