// Package mapfile reads and writes template set files (TOML) and map
// documents (JSON).
package mapfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/samdwyer/wallsandholes/internal/tileset"
)

// SetExt is the file extension used for template set files.
const SetExt = ".tset.toml"

// setFile represents the structure of a template set file.
type setFile struct {
	Name      string                `toml:"name"`
	Templates []tileset.TemplateDef `toml:"template"`
}

// LoadSet reads a template set file. The returned set remembers path as its
// save path and is marked saved.
func LoadSet(path string) (*tileset.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template set %s: %w", path, err)
	}

	var file setFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse template set %s: %w", path, err)
	}
	if file.Name == "" {
		file.Name = setNameFromPath(path)
	}

	s, err := tileset.NewSetFromDefs(file.Name, file.Templates)
	if err != nil {
		return nil, fmt.Errorf("load template set %s: %w", path, err)
	}
	s.SetSavePath(path)
	return s, nil
}

// SaveSet writes s to path, records path as its save path and marks it saved.
func SaveSet(s *tileset.Set, path string) error {
	file := setFile{Name: s.Name()}
	for _, t := range s.Templates() {
		file.Templates = append(file.Templates, t.Def())
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(file); err != nil {
		return fmt.Errorf("encode template set %q: %w", s.Name(), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write template set %s: %w", path, err)
	}

	s.SetSavePath(path)
	s.MarkSaved()
	return nil
}

func setNameFromPath(path string) string {
	base := filepath.Base(path)
	if n := len(base) - len(SetExt); n > 0 && base[n:] == SetExt {
		return base[:n]
	}
	return base
}
