package tilemap

import "github.com/samdwyer/wallsandholes/internal/tileset"

// probeMode is what the map does with incoming cell pings.
type probeMode int

const (
	probeIdle probeMode = iota
	probeTemplate
	probeSet
)

// String returns a human-readable mode name.
func (p probeMode) String() string {
	switch p {
	case probeIdle:
		return "idle"
	case probeTemplate:
		return "template"
	case probeSet:
		return "set"
	default:
		return "unknown"
	}
}

// TemplateUsed reports whether any cell references t.
//
// The map keeps no index of templates. Instead t pings every cell holding
// it and the map watches for a reply, so writes stay cheap and the cost is
// paid here, proportional to the number of references. A nil template is
// never "used".
func (m *Map) TemplateUsed(t *tileset.Template) (used bool) {
	if t == nil {
		return false
	}
	m.beginProbe(probeTemplate)
	defer func() { used = m.endProbe() }()
	t.Ping()
	return
}

// TemplateSetUsed reports whether any cell references a template of s. It
// stops pinging at the first template found.
func (m *Map) TemplateSetUsed(s *tileset.Set) (used bool) {
	m.beginProbe(probeSet)
	defer func() { used = m.endProbe() }()
	for _, t := range s.Templates() {
		t.Ping()
		if m.pinged {
			break
		}
	}
	return
}

func (m *Map) beginProbe(mode probeMode) {
	if m.probe != probeIdle {
		panic("tilemap: usage probe started while a " + m.probe.String() + " probe is running")
	}
	m.probe = mode
	m.pinged = false
}

// endProbe returns the map to idle. It runs deferred so a panicking ping
// handler cannot leave the map stuck mid-probe.
func (m *Map) endProbe() bool {
	found := m.pinged
	m.pinged = false
	m.probe = probeIdle
	return found
}

func (m *Map) cellPinged(x, y int) {
	switch m.probe {
	case probeTemplate, probeSet:
		m.pinged = true
	}
}
