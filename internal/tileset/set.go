package tileset

import (
	"fmt"

	"github.com/google/uuid"
)

// Set is an ordered collection of templates. It owns its templates: a
// template belongs to exactly one set at a time.
type Set struct {
	name      string
	savePath  string
	templates []*Template
	saved     bool

	saveListeners []func(saved bool)
}

// NewSet creates an empty, unsaved set.
func NewSet(name string) *Set {
	return &Set{name: name}
}

// Name returns the set's display name.
func (s *Set) Name() string { return s.name }

// SetName renames the set.
func (s *Set) SetName(name string) {
	s.name = name
	s.setSaved(false)
}

// SavePath returns the file the set was last loaded from or saved to.
func (s *Set) SavePath() string { return s.savePath }

// SetSavePath records where the set lives on disk.
func (s *Set) SetSavePath(path string) { s.savePath = path }

// IsSaved reports whether the set has no unsaved changes.
func (s *Set) IsSaved() bool { return s.saved }

// MarkSaved records that the current contents are on disk.
func (s *Set) MarkSaved() { s.setSaved(true) }

// OnSaveStateChanged registers fn to run whenever IsSaved flips.
func (s *Set) OnSaveStateChanged(fn func(saved bool)) {
	s.saveListeners = append(s.saveListeners, fn)
}

// Add appends t to the set and takes ownership of it.
// It panics if t already belongs to a set.
func (s *Set) Add(t *Template) {
	if t.set != nil {
		panic(fmt.Sprintf("tileset: template %s already belongs to set %q", t, t.set.name))
	}
	t.set = s
	s.templates = append(s.templates, t)
	s.setSaved(false)
}

// Remove drops the template at index i and returns it. Callers should make
// sure no map still references it; tilemap.Map.RemoveTemplate checks first.
func (s *Set) Remove(i int) *Template {
	t := s.At(i)
	s.templates = append(s.templates[:i:i], s.templates[i+1:]...)
	t.set = nil
	s.setSaved(false)
	return t
}

// At returns the template at index i. It panics if i is out of range.
func (s *Set) At(i int) *Template {
	if i < 0 || i >= len(s.templates) {
		panic(fmt.Sprintf("tileset: index %d out of range for set %q of size %d", i, s.name, len(s.templates)))
	}
	return s.templates[i]
}

// Len returns the number of templates.
func (s *Set) Len() int { return len(s.templates) }

// Templates returns the templates in order.
func (s *Set) Templates() []*Template {
	out := make([]*Template, len(s.templates))
	copy(out, s.templates)
	return out
}

// IndexOf returns the index of t, or -1 if t is not in the set.
func (s *Set) IndexOf(t *Template) int {
	for i, other := range s.templates {
		if other == t {
			return i
		}
	}
	return -1
}

// ByID returns the template with the given ID, or nil if not found.
func (s *Set) ByID(id uuid.UUID) *Template {
	for _, t := range s.templates {
		if t.id == id {
			return t
		}
	}
	return nil
}

func (s *Set) setSaved(saved bool) {
	if s.saved == saved {
		return
	}
	s.saved = saved
	for _, fn := range s.saveListeners {
		fn(saved)
	}
}
