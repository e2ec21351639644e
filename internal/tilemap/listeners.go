package tilemap

// ListenerID identifies a registered callback so it can be removed.
type ListenerID uint64

type listener[F any] struct {
	id ListenerID
	fn F
}

// without returns a fresh slice holding every listener except id, so a
// dispatch loop ranging over the old slice is unaffected.
func without[F any](ls []listener[F], id ListenerID) ([]listener[F], bool) {
	kept := make([]listener[F], 0, len(ls))
	found := false
	for _, l := range ls {
		if l.id == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	return kept, found
}

// OnCellChanged registers fn to run after a cell's template reference is
// replaced. A map-changed notification always follows.
func (m *Map) OnCellChanged(fn func(x, y int)) ListenerID {
	m.nextListener++
	m.cellChanged = append(m.cellChanged, listener[func(x, y int)]{m.nextListener, fn})
	return m.nextListener
}

// OnResized registers fn to run after the map is resized. A map-changed
// notification always follows.
func (m *Map) OnResized(fn func()) ListenerID {
	m.nextListener++
	m.resized = append(m.resized, listener[func()]{m.nextListener, fn})
	return m.nextListener
}

// OnMapChanged registers fn to run once after every cell change and resize.
func (m *Map) OnMapChanged(fn func()) ListenerID {
	m.nextListener++
	m.mapChanged = append(m.mapChanged, listener[func()]{m.nextListener, fn})
	return m.nextListener
}

// RemoveListener detaches a callback. It returns false if id is unknown.
func (m *Map) RemoveListener(id ListenerID) bool {
	var found bool
	if m.cellChanged, found = without(m.cellChanged, id); found {
		return true
	}
	if m.resized, found = without(m.resized, id); found {
		return true
	}
	m.mapChanged, found = without(m.mapChanged, id)
	return found
}

func (m *Map) emitCellChanged(x, y int) {
	for _, l := range m.cellChanged {
		l.fn(x, y)
	}
	m.emitMapChanged()
}

func (m *Map) emitResized() {
	for _, l := range m.resized {
		l.fn()
	}
	m.emitMapChanged()
}

func (m *Map) emitMapChanged() {
	for _, l := range m.mapChanged {
		l.fn()
	}
}
