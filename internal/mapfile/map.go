package mapfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wallsandholes/internal/logging"
	"github.com/samdwyer/wallsandholes/internal/telemetry"
	"github.com/samdwyer/wallsandholes/internal/tilemap"
	"github.com/samdwyer/wallsandholes/internal/tileset"
)

var (
	// ErrUnsavedDependency is returned when saving a map that depends on a
	// template set with no save path.
	ErrUnsavedDependency = errors.New("template set has no save path")
	// ErrMissingDependency is returned when a cell references a template
	// whose set is not a dependency of the map.
	ErrMissingDependency = errors.New("template set is not a map dependency")
	// ErrUnknownTemplate is returned when a map file references a template
	// that none of its dependencies define.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrInvalidMap is returned for structurally broken map files.
	ErrInvalidMap = errors.New("invalid map file")
)

// mapDoc represents the structure of a map file.
type mapDoc struct {
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Dependencies []string `json:"dependencies"` // Template set paths, relative to the map file when possible
	Cells        []string `json:"cells"`        // Row-major template IDs; "" is an empty cell
}

// Save writes m to path. Every dependency must already have a save path.
func Save(ctx context.Context, path string, m *tilemap.Map) error {
	tracer := telemetry.Tracer("mapfile")
	ctx, span := tracer.Start(ctx, "mapfile.save")
	defer span.End()

	logger := logging.FromContext(ctx)
	dir := filepath.Dir(path)

	deps := m.Dependencies()
	doc := mapDoc{
		Width:        m.Width(),
		Height:       m.Height(),
		Dependencies: make([]string, 0, len(deps)),
		Cells:        make([]string, 0, m.Width()*m.Height()),
	}

	known := make(map[*tileset.Set]bool, len(deps))
	for _, s := range deps {
		if s.SavePath() == "" {
			return fmt.Errorf("save map %s: set %q: %w", path, s.Name(), ErrUnsavedDependency)
		}
		known[s] = true
		doc.Dependencies = append(doc.Dependencies, relativeTo(dir, s.SavePath()))
	}

	var err error
	m.Each(func(c *tilemap.Cell) {
		if err != nil {
			return
		}
		t := c.Template()
		if t == nil {
			doc.Cells = append(doc.Cells, "")
			return
		}
		if !known[t.Set()] {
			err = fmt.Errorf("save map %s: cell (%d, %d) uses %s: %w", path, c.X(), c.Y(), t, ErrMissingDependency)
			return
		}
		doc.Cells = append(doc.Cells, t.ID().String())
	})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode map %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write map %s: %w", path, err)
	}

	span.SetAttributes(
		attribute.Int("map.width", doc.Width),
		attribute.Int("map.height", doc.Height),
		attribute.Int("map.dependencies", len(doc.Dependencies)),
	)
	logger.Debug("saved map", "path", path, "width", doc.Width, "height", doc.Height, "dependencies", len(doc.Dependencies))
	return nil
}

// Load reads the map at path. It builds a map of the saved size, opens each
// dependency through lib and replays the cell contents.
func Load(ctx context.Context, path string, lib *Library) (*tilemap.Map, error) {
	tracer := telemetry.Tracer("mapfile")
	ctx, span := tracer.Start(ctx, "mapfile.load")
	defer span.End()

	logger := logging.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}

	var doc mapDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse map %s: %w", path, err)
	}
	if doc.Width < 1 || doc.Height < 1 {
		return nil, fmt.Errorf("load map %s: size %dx%d: %w", path, doc.Width, doc.Height, ErrInvalidMap)
	}
	if len(doc.Cells) != doc.Width*doc.Height {
		return nil, fmt.Errorf("load map %s: %d cells for %dx%d: %w", path, len(doc.Cells), doc.Width, doc.Height, ErrInvalidMap)
	}

	m := tilemap.New(doc.Width, doc.Height)
	index := make(map[uuid.UUID]*tileset.Template)
	dir := filepath.Dir(path)

	for _, dep := range doc.Dependencies {
		if !filepath.IsAbs(dep) {
			dep = filepath.Join(dir, dep)
		}
		s, err := lib.Open(dep)
		if err != nil {
			m.Release()
			return nil, fmt.Errorf("load map %s: %w", path, err)
		}
		m.AddDependency(s)
		for _, t := range s.Templates() {
			if prev, ok := index[t.ID()]; ok && prev != t {
				m.Release()
				return nil, fmt.Errorf("load map %s: template %s in both %q and %q: %w", path, t.ID(), prev.Set().Name(), s.Name(), ErrInvalidMap)
			}
			index[t.ID()] = t
		}
	}

	for i, raw := range doc.Cells {
		if raw == "" {
			continue
		}
		x, y := i%doc.Width, i/doc.Width
		id, err := uuid.Parse(raw)
		if err != nil {
			m.Release()
			return nil, fmt.Errorf("load map %s: cell (%d, %d): %w", path, x, y, err)
		}
		t, ok := index[id]
		if !ok {
			m.Release()
			return nil, fmt.Errorf("load map %s: cell (%d, %d) template %s: %w", path, x, y, id, ErrUnknownTemplate)
		}
		m.SetCell(x, y, t)
	}

	span.SetAttributes(
		attribute.Int("map.width", doc.Width),
		attribute.Int("map.height", doc.Height),
		attribute.Int("map.dependencies", len(doc.Dependencies)),
	)
	logger.Debug("loaded map", "path", path, "width", doc.Width, "height", doc.Height, "dependencies", len(doc.Dependencies))
	return m, nil
}

func relativeTo(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return rel
}
