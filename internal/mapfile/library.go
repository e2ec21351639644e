package mapfile

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/samdwyer/wallsandholes/internal/tileset"
)

// Library holds the template sets open in the editor, keyed by file path,
// so several maps loading the same set share one set and one identity per
// template.
type Library struct {
	sets  map[string]*tileset.Set
	order []*tileset.Set
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{sets: make(map[string]*tileset.Set)}
}

// Add registers s under its save path. Sets without a save path are kept
// but can only be found through Sets and Template. Adding a set again
// after it was saved somewhere new registers the new path.
func (l *Library) Add(s *tileset.Set) {
	if s.SavePath() != "" {
		l.sets[cleanPath(s.SavePath())] = s
	}
	for _, existing := range l.order {
		if existing == s {
			return
		}
	}
	l.order = append(l.order, s)
}

// Open returns the set loaded from path, reading the file on first use.
func (l *Library) Open(path string) (*tileset.Set, error) {
	if s, ok := l.sets[cleanPath(path)]; ok {
		return s, nil
	}
	s, err := LoadSet(path)
	if err != nil {
		return nil, err
	}
	l.Add(s)
	return s, nil
}

// Sets returns every registered set in the order it was added.
func (l *Library) Sets() []*tileset.Set {
	out := make([]*tileset.Set, len(l.order))
	copy(out, l.order)
	return out
}

// Template finds the template with the given ID in any registered set.
func (l *Library) Template(id uuid.UUID) *tileset.Template {
	for _, s := range l.order {
		if t := s.ByID(id); t != nil {
			return t
		}
	}
	return nil
}

func cleanPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
