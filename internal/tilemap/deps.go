package tilemap

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wallsandholes/internal/telemetry"
	"github.com/samdwyer/wallsandholes/internal/tileset"
)

// ErrTemplateInUse is returned when removing a template that a cell still
// references.
var ErrTemplateInUse = errors.New("template is used by the map")

// RemoveTemplate drops the template at index i from s unless a cell of m
// references it. It returns the removed template.
func (m *Map) RemoveTemplate(s *tileset.Set, i int) (*tileset.Template, error) {
	t := s.At(i)
	if m.TemplateUsed(t) {
		return nil, fmt.Errorf("remove %s from %q: %w", t, s.Name(), ErrTemplateInUse)
	}
	return s.Remove(i), nil
}

// AddDependency records that the map uses templates from s. A set already
// in the list is not added again; it returns false in that case.
func (m *Map) AddDependency(s *tileset.Set) bool {
	for _, d := range m.deps {
		if d == s {
			return false
		}
	}
	m.deps = append(m.deps, s)
	return true
}

// Dependencies returns the dependency list in insertion order.
func (m *Map) Dependencies() []*tileset.Set {
	out := make([]*tileset.Set, len(m.deps))
	copy(out, m.deps)
	return out
}

// PruneDependencies removes every dependency whose templates are no longer
// referenced by any cell and returns the removed sets. It must not run
// concurrently with any change to the map.
func (m *Map) PruneDependencies(ctx context.Context) []*tileset.Set {
	tracer := telemetry.Tracer("tilemap")
	_, span := tracer.Start(ctx, "tilemap.prune")
	defer span.End()

	kept := make([]*tileset.Set, 0, len(m.deps))
	var removed []*tileset.Set
	for _, s := range m.deps {
		if m.TemplateSetUsed(s) {
			kept = append(kept, s)
		} else {
			removed = append(removed, s)
		}
	}
	m.deps = kept

	span.SetAttributes(
		attribute.Int("tilemap.dependencies_kept", len(kept)),
		attribute.Int("tilemap.dependencies_removed", len(removed)),
	)
	return removed
}
