// Package ui draws tile maps to the terminal using tcell.
package ui

import "github.com/gdamore/tcell/v2"

// Screen is the terminal the editor draws on and reads pointer and key
// events from.
type Screen struct {
	screen tcell.Screen
}

// NewScreen opens the controlling terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return Wrap(s)
}

// Wrap initializes s for editing: mouse motion is reported even with no
// button held, so tools can preview under the pointer. Tests pass a tcell
// simulation screen.
func Wrap(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse(tcell.MouseMotionEvents)
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent blocks until the next event. It returns nil once the screen is
// closed.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Interrupt wakes a blocked PollEvent with a *tcell.EventInterrupt. It is
// the only method safe to call from another goroutine.
func (s *Screen) Interrupt() {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Clear blanks the back buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the back buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent draws r at column x, row y.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// Sync redraws the whole terminal, e.g. after a resize.
func (s *Screen) Sync() {
	s.screen.Sync()
}
