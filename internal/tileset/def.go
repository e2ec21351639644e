package tileset

import (
	"fmt"

	"github.com/google/uuid"
)

// TemplateDef is the serialized form of a template, shared by the embedded
// palette (JSON) and template set files (TOML).
type TemplateDef struct {
	ID        string     `json:"id,omitempty" toml:"id"`
	Name      string     `json:"name" toml:"name"`
	Color     string     `json:"color" toml:"color"`   // Hex color code (e.g., "#8B5A2B")
	Height    float64    `json:"height" toml:"height"` // World units above ground
	Thickness float64    `json:"thickness,omitempty" toml:"thickness,omitempty"`
	Position  [2]float64 `json:"position,omitempty" toml:"position,omitempty"`
}

// NewTemplateFromDef builds a template from its serialized form. An empty ID
// gets a fresh one; a zero thickness means full thickness.
func NewTemplateFromDef(def TemplateDef) (*Template, error) {
	color, err := ParseHexColor(def.Color)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", def.Name, err)
	}

	t := NewTemplate(def.Name, color)
	if def.ID != "" {
		id, err := uuid.Parse(def.ID)
		if err != nil {
			return nil, fmt.Errorf("template %q: invalid id: %w", def.Name, err)
		}
		t.id = id
	}

	t.height = clamp(def.Height, MinHeight, MaxHeight)
	if def.Thickness != 0 {
		t.thickness = clamp(def.Thickness, MinThickness, MaxThickness)
	}
	t.posX = clamp(def.Position[0], -MaxOffset, MaxOffset)
	t.posY = clamp(def.Position[1], -MaxOffset, MaxOffset)
	return t, nil
}

// Def returns the serialized form of t.
func (t *Template) Def() TemplateDef {
	return TemplateDef{
		ID:        t.id.String(),
		Name:      t.name,
		Color:     FormatHexColor(t.color),
		Height:    t.height,
		Thickness: t.thickness,
		Position:  [2]float64{t.posX, t.posY},
	}
}

// NewSetFromDefs builds a set owning one template per def, in order.
// The returned set is marked saved.
func NewSetFromDefs(name string, defs []TemplateDef) (*Set, error) {
	s := NewSet(name)
	seen := make(map[uuid.UUID]bool, len(defs))
	for _, def := range defs {
		t, err := NewTemplateFromDef(def)
		if err != nil {
			return nil, fmt.Errorf("set %q: %w", name, err)
		}
		if seen[t.id] {
			return nil, fmt.Errorf("set %q: duplicate template id %s", name, t.id)
		}
		seen[t.id] = true
		s.Add(t)
	}
	s.MarkSaved()
	return s, nil
}
