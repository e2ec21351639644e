package tileset

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// PaletteFile represents the structure of palette.json.
type PaletteFile struct {
	Name      string        `json:"name"`
	Templates []TemplateDef `json:"templates"`
}

// LoadPalette builds a new set from the embedded palette.json. Every call
// returns a distinct set with distinct templates.
func LoadPalette() (*Set, error) {
	file, err := Load[PaletteFile]("palette.json")
	if err != nil {
		return nil, err
	}
	if len(file.Templates) == 0 {
		return nil, errors.New("no templates loaded from palette.json")
	}
	return NewSetFromDefs(file.Name, file.Templates)
}

// MustLoadPalette loads the embedded palette, panicking on error.
func MustLoadPalette() *Set {
	s, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return s
}

var (
	groundOnce sync.Once
	ground     *Template
)

// Ground returns the template used to draw empty cells. It is created on
// first use and never modified; it belongs to no set and is never stored in
// a map cell.
func Ground() *Template {
	groundOnce.Do(func() {
		ground = NewTemplate("Default Ground", tcell.NewRGBColor(0x4C, 0x7A, 0x3A))
	})
	return ground
}
