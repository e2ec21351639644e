// Package editor provides the terminal map editor: it owns the open map and
// feeds pointer and key events into the editing tools.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wallsandholes/internal/logging"
	"github.com/samdwyer/wallsandholes/internal/mapfile"
	"github.com/samdwyer/wallsandholes/internal/tilemap"
	"github.com/samdwyer/wallsandholes/internal/tileset"
	"github.com/samdwyer/wallsandholes/internal/tool"
	"github.com/samdwyer/wallsandholes/internal/ui"
)

// Tool names registered with the tool manager.
const (
	ToolBrush = "brush"
	ToolFill  = "fill"
)

// Editor holds the entire editor state. Everything runs on the goroutine
// that calls Run.
type Editor struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	logger   *log.Logger

	m       *tilemap.Map
	lib     *mapfile.Library
	palette *tileset.Set
	tools   *tool.Manager

	status  string
	pressed bool
	onMap   bool
	running bool
	closed  bool
}

// New creates an editor drawing to screen. It opens cfg.MapPath if the file
// exists and creates an empty map otherwise.
func New(ctx context.Context, cfg Config, screen *ui.Screen) (*Editor, error) {
	e := &Editor{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		logger:   logging.FromContext(ctx),
		lib:      mapfile.NewLibrary(),
		tools:    tool.NewManager(),
		running:  true,
	}

	palette, err := e.loadPalette()
	if err != nil {
		return nil, err
	}
	e.palette = palette
	e.lib.Add(palette)

	m, err := e.openMap(ctx)
	if err != nil {
		return nil, err
	}

	e.tools.Register(ToolBrush, tool.NewBrush())
	e.tools.Register(ToolFill, tool.NewFill())
	e.SetMap(m)
	e.selectPalette(0)
	return e, nil
}

// Map returns the open map.
func (e *Editor) Map() *tilemap.Map { return e.m }

// Tools returns the tool manager.
func (e *Editor) Tools() *tool.Manager { return e.tools }

// Status returns the current status line.
func (e *Editor) Status() string { return e.status }

// SetMap replaces the open map. Tools drop any state tied to the old one and
// the old map lets go of its templates.
func (e *Editor) SetMap(m *tilemap.Map) {
	if e.m != nil && e.m != m {
		e.m.Release()
	}
	e.m = m
	e.tools.SetMap(m)
}

// Run executes the main editor loop until the user quits or ctx is
// cancelled. It closes the screen before returning and reports ctx.Err()
// when cancelled.
func (e *Editor) Run(ctx context.Context) error {
	defer e.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			e.screen.Interrupt()
		case <-done:
		}
	}()

	for e.running {
		e.render()

		ev := e.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return nil
		}
		e.HandleEvent(ctx, ev)
	}
	return ctx.Err()
}

// HandleEvent processes a single terminal event.
func (e *Editor) HandleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		e.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		e.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventInterrupt:
		if ctx.Err() != nil {
			e.logger.Info("interrupted, leaving editor")
			e.running = false
		}
	}
}

// Running returns false once the user has asked to quit.
func (e *Editor) Running() bool { return e.running }

func (e *Editor) render() {
	e.renderer.Render(e.m, e.tools.Overlay(), e.status)
}

// handleMouseEvent converts a mouse event to map coordinates and forwards it
// to the active tool. A press clicks once; moving with the button held
// keeps painting with the brush only.
func (e *Editor) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	x, y := e.renderer.CellAt(ev.Position())
	down := ev.Buttons()&tcell.Button1 != 0

	if !e.m.Contains(x, y) {
		if e.onMap {
			e.tools.MouseExitedMap()
			e.onMap = false
		}
		e.pressed = down
		return
	}
	e.onMap = true

	switch {
	case down && !e.pressed:
		e.pressed = true
		e.paint(ctx, x, y)
	case down && e.tools.ActiveName() == ToolBrush:
		e.paint(ctx, x, y)
	case !down:
		e.pressed = false
		e.tools.CellHovered(x, y)
	}
}

// paint applies the active tool and records the paint template's set as a
// map dependency.
func (e *Editor) paint(ctx context.Context, x, y int) {
	if t := e.tools.Template(); t != nil && t.Set() != nil {
		if e.m.AddDependency(t.Set()) {
			e.logger.Debug("added dependency", "set", t.Set().Name())
		}
	}
	e.tools.CellClicked(ctx, x, y)
}

// handleKeyEvent processes keyboard input.
func (e *Editor) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		e.running = false
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch r := ev.Rune(); {
	case r == 'q' || r == 'Q':
		e.running = false
	case r == 'b':
		e.activate(ToolBrush)
	case r == 'f':
		e.activate(ToolFill)
	case r == '0':
		e.tools.SetTemplate(nil)
		e.status = "eraser"
	case r >= '1' && r <= '9':
		e.selectPalette(int(r - '1'))
	case r == 'g':
		e.m.Resize(e.m.Width()+1, e.m.Height()+1)
		e.status = fmt.Sprintf("map is now %dx%d", e.m.Width(), e.m.Height())
	case r == 'c':
		e.m.Clear()
		e.status = "map cleared"
	case r == 'p':
		e.prune(ctx)
	case r == 's':
		if err := e.Save(ctx); err != nil {
			e.logger.Error("save failed", "err", err)
			e.status = "save failed: " + err.Error()
		}
	}
}

func (e *Editor) activate(name string) {
	if err := e.tools.Activate(name); err != nil {
		e.logger.Error("activate tool", "err", err)
		return
	}
	e.status = name + " tool"
}

func (e *Editor) selectPalette(i int) {
	if i >= e.palette.Len() {
		return
	}
	t := e.palette.At(i)
	e.tools.SetTemplate(t)
	e.status = "painting with " + t.Name()
}

func (e *Editor) prune(ctx context.Context) {
	removed := e.m.PruneDependencies(ctx)
	names := make([]string, 0, len(removed))
	for _, s := range removed {
		names = append(names, s.Name())
	}
	e.logger.Info("pruned dependencies", "removed", names)
	e.status = fmt.Sprintf("pruned %d unused template sets", len(removed))
}

// Save writes every unsaved dependency to the set directory, then the map.
func (e *Editor) Save(ctx context.Context) error {
	for _, s := range e.m.Dependencies() {
		if s.SavePath() != "" && s.IsSaved() {
			continue
		}
		path := s.SavePath()
		if path == "" {
			path = filepath.Join(e.cfg.SetDir, fileName(s.Name())+mapfile.SetExt)
		}
		if err := mapfile.SaveSet(s, path); err != nil {
			return err
		}
		e.lib.Add(s)
		e.logger.Info("saved template set", "set", s.Name(), "path", path)
	}

	if err := mapfile.Save(ctx, e.cfg.MapPath, e.m); err != nil {
		return err
	}
	e.logger.Info("saved map", "path", e.cfg.MapPath)
	e.status = "saved " + e.cfg.MapPath
	return nil
}

// loadPalette opens the configured palette. Without one it prefers the
// built-in palette saved by an earlier session, so maps that reference it
// and the palette share templates.
func (e *Editor) loadPalette() (*tileset.Set, error) {
	if e.cfg.PalettePath != "" {
		return e.lib.Open(e.cfg.PalettePath)
	}
	s, err := tileset.LoadPalette()
	if err != nil {
		return nil, err
	}
	saved := filepath.Join(e.cfg.SetDir, fileName(s.Name())+mapfile.SetExt)
	if _, err := os.Stat(saved); err == nil {
		return e.lib.Open(saved)
	}
	return s, nil
}

func (e *Editor) openMap(ctx context.Context) (*tilemap.Map, error) {
	if _, err := os.Stat(e.cfg.MapPath); errors.Is(err, fs.ErrNotExist) {
		e.logger.Info("creating new map", "path", e.cfg.MapPath, "width", e.cfg.Width, "height", e.cfg.Height)
		return tilemap.New(e.cfg.Width, e.cfg.Height), nil
	}
	return mapfile.Load(ctx, e.cfg.MapPath, e.lib)
}

// fileName turns a set name into a file name.
func fileName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" {
		return "untitled"
	}
	return name
}

// Close releases the screen. It is safe to call more than once.
func (e *Editor) Close() {
	if e.closed || e.screen == nil {
		return
	}
	e.closed = true
	e.screen.Close()
}
