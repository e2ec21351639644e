package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/samdwyer/wallsandholes/internal/tilemap"
	"github.com/samdwyer/wallsandholes/internal/tileset"
)

func newManager(m *tilemap.Map) (*Manager, *Brush, *Fill) {
	mg := NewManager()
	brush, fill := NewBrush(), NewFill()
	mg.Register("brush", brush)
	mg.Register("fill", fill)
	mg.SetMap(m)
	return mg, brush, fill
}

func TestManagerRegister(t *testing.T) {
	mg, brush, _ := newManager(tilemap.New(2, 2))

	if diff := cmp.Diff([]string{"brush", "fill"}, mg.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	if mg.ActiveName() != "brush" || mg.Active() != brush {
		t.Errorf("First registered tool should be active, got %q", mg.ActiveName())
	}
}

func TestManagerActivate(t *testing.T) {
	m := tilemap.New(2, 2)
	mg, _, fill := newManager(m)

	if err := mg.Activate("fill"); err != nil {
		t.Fatalf("Activate(fill) failed: %v", err)
	}
	mg.CellHovered(0, 0)
	if fill.Overlay() == nil {
		t.Fatal("Hover should reach the active fill tool")
	}

	if err := mg.Activate("brush"); err != nil {
		t.Fatalf("Activate(brush) failed: %v", err)
	}
	if fill.Overlay() != nil || fill.Selection() != nil {
		t.Error("Switching away should deactivate the fill tool")
	}

	err := mg.Activate("lasso")
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("Expected ErrUnknownTool, got %v", err)
	}
	if mg.ActiveName() != "brush" {
		t.Errorf("Failed activation should keep the active tool, got %q", mg.ActiveName())
	}
}

func TestManagerForwardsTemplate(t *testing.T) {
	m := tilemap.New(3, 1)
	mg, brush, fill := newManager(m)
	a := tileset.NewTemplate("A", tcell.ColorRed)

	mg.SetTemplate(a)
	if brush.Template() != a || fill.Template() != a || mg.Template() != a {
		t.Fatal("SetTemplate should reach every tool")
	}

	mg.CellClicked(context.Background(), 1, 0)
	if m.TemplateAt(1, 0) != a || m.TemplateAt(0, 0) != nil {
		t.Error("Brush click should paint exactly one cell")
	}

	if err := mg.Activate("fill"); err != nil {
		t.Fatal(err)
	}
	mg.CellClicked(context.Background(), 0, 0)
	if m.TemplateAt(0, 0) != a || m.TemplateAt(2, 0) != nil {
		t.Error("Fill click should paint only the empty region around (0,0)")
	}
}

func TestManagerRegisterAfterSetMap(t *testing.T) {
	m := tilemap.New(2, 2)
	mg := NewManager()
	mg.SetMap(m)
	a := tileset.NewTemplate("A", tcell.ColorRed)
	mg.SetTemplate(a)

	b := NewBrush()
	mg.Register("brush", b)

	if b.Map() != m || b.Template() != a {
		t.Error("Late registration should bind the current map and template")
	}
}

func TestManagerEmpty(t *testing.T) {
	mg := NewManager()

	// No tool registered: events are dropped
	mg.CellClicked(context.Background(), 0, 0)
	mg.CellHovered(0, 0)
	mg.MouseExitedMap()
	if mg.Active() != nil || mg.Overlay() != nil {
		t.Error("Empty manager should have no active tool or overlay")
	}
}

func TestBrush(t *testing.T) {
	m := tilemap.New(2, 2)
	a := tileset.NewTemplate("A", tcell.ColorRed)
	b := NewBrush()
	b.SetMap(m)
	b.SetTemplate(a)

	b.CellHovered(1, 1)
	if !b.Overlay().Covers(1, 1) || b.Overlay().Len() != 1 {
		t.Error("Brush preview should cover the hovered cell only")
	}
	b.CellHovered(5, 5)
	if b.Overlay() != nil {
		t.Error("Hovering off the map should drop the preview")
	}

	b.CellClicked(context.Background(), 1, 1)
	if m.TemplateAt(1, 1) != a {
		t.Error("Brush click should paint the cell")
	}

	b.SetTemplate(nil)
	b.CellClicked(context.Background(), 1, 1)
	if m.TemplateAt(1, 1) != nil {
		t.Error("Brush with no template should erase")
	}

	b.CellHovered(0, 0)
	b.MouseExitedMap()
	if b.Overlay() != nil {
		t.Error("MouseExitedMap should drop the preview")
	}
}
