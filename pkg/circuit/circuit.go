package circuit

import (
	"fmt"
	"slices"
	"strings"
)

// Component is a named instance of a hardware part.
//
// Pins holds the pin-count/pin-index hints given in the declaration's
// parenthesized group, in source order. It is empty (never nil after
// parsing) when the group was absent.
type Component struct {
	Name string `json:"name" bson:"name"`
	Type string `json:"type" bson:"type"`
	Pins []int  `json:"pins" bson:"pins"`
	Line int    `json:"line,omitempty" bson:"line,omitempty"` // 1-based source line, 0 if unknown
}

// Endpoint is an unresolved connection end: a component name and a numeric
// pin index.
type Endpoint struct {
	Component string `json:"component" bson:"component"`
	Pin       int    `json:"pin" bson:"pin"`
}

// String formats the endpoint as "name[index]".
func (e Endpoint) String() string {
	return fmt.Sprintf("%s[%d]", e.Component, e.Pin)
}

// Connection is a single directed statement "pin X of A is wired to pin Y of B".
type Connection struct {
	From Endpoint `json:"from" bson:"from"`
	To   Endpoint `json:"to" bson:"to"`
	Line int      `json:"line,omitempty" bson:"line,omitempty"`
}

// String formats the connection as it would be written in a source text.
func (c Connection) String() string {
	return fmt.Sprintf("connect %s %d to %s %d", c.From.Component, c.From.Pin, c.To.Component, c.To.Pin)
}

// Source is the result of parsing one text body.
//
// Components keep declaration order; a duplicate name replaces the earlier
// declaration's content but keeps its position. Connections keep source
// order and may contain duplicates.
type Source struct {
	components  []Component
	index       map[string]int
	Connections []Connection
	// Skipped counts non-blank lines that matched neither declaration form.
	Skipped int
}

// NewSource creates an empty Source.
func NewSource() *Source {
	return &Source{index: make(map[string]int)}
}

// Declare adds c, replacing any earlier component with the same name.
func (s *Source) Declare(c Component) {
	if c.Pins == nil {
		c.Pins = []int{}
	}
	if i, ok := s.index[c.Name]; ok {
		s.components[i] = c
		return
	}
	s.index[c.Name] = len(s.components)
	s.components = append(s.components, c)
}

// Connect appends a connection statement.
func (s *Source) Connect(c Connection) {
	s.Connections = append(s.Connections, c)
}

// Component looks up a component by name.
func (s *Source) Component(name string) (Component, bool) {
	i, ok := s.index[name]
	if !ok {
		return Component{}, false
	}
	return s.components[i], true
}

// Components returns the components in declaration order.
// The returned slice must not be modified.
func (s *Source) Components() []Component {
	return s.components
}

// ComponentCount returns the number of distinct component names.
func (s *Source) ComponentCount() int { return len(s.components) }

// Peer is a resolved connection end: a component name and a symbolic pin name.
type Peer struct {
	Component string `json:"component" bson:"component"`
	Pin       string `json:"pin" bson:"pin"`
}

// NodeID returns the "<component>:<pin>" identifier used by renderers.
func (p Peer) NodeID() string {
	return p.Component + ":" + p.Pin
}

// String implements fmt.Stringer.
func (p Peer) String() string { return p.NodeID() }

// ParseNodeID splits a "<component>:<pin>" identifier.
// Component names never contain ':', so the first separator wins.
func ParseNodeID(id string) (Peer, bool) {
	comp, pin, ok := strings.Cut(id, ":")
	if !ok || comp == "" || pin == "" {
		return Peer{}, false
	}
	return Peer{Component: comp, Pin: pin}, true
}

// Link is one undirected wire between two pins.
type Link struct {
	A Peer `json:"a"`
	B Peer `json:"b"`
}

// WiringMap is the symmetric component → pin → peer graph.
// The zero value is not usable; create one with [NewWiringMap].
type WiringMap struct {
	pins map[string]map[string]Peer
}

// NewWiringMap creates an empty wiring map.
func NewWiringMap() *WiringMap {
	return &WiringMap{pins: make(map[string]map[string]Peer)}
}

// Connect wires a to b, inserting the forward entry a → b and the reverse
// entry b → a. If either pin slot was already wired, the old wire is removed
// first so its other end does not keep a dangling back-reference.
func (m *WiringMap) Connect(a, b Peer) {
	m.unlink(a)
	m.unlink(b)
	m.set(a, b)
	m.set(b, a)
}

func (m *WiringMap) set(at, peer Peer) {
	pins, ok := m.pins[at.Component]
	if !ok {
		pins = make(map[string]Peer)
		m.pins[at.Component] = pins
	}
	pins[at.Pin] = peer
}

// unlink removes the wire attached to p, if any.
func (m *WiringMap) unlink(p Peer) {
	old, ok := m.Peer(p.Component, p.Pin)
	if !ok {
		return
	}
	m.remove(p)
	if back, ok := m.Peer(old.Component, old.Pin); ok && back == p {
		m.remove(old)
	}
}

func (m *WiringMap) remove(p Peer) {
	pins := m.pins[p.Component]
	delete(pins, p.Pin)
	if len(pins) == 0 {
		delete(m.pins, p.Component)
	}
}

// Peer returns what the given pin is wired to.
func (m *WiringMap) Peer(component, pin string) (Peer, bool) {
	p, ok := m.pins[component][pin]
	return p, ok
}

// Components returns the names of components with at least one wired pin, sorted.
func (m *WiringMap) Components() []string {
	names := make([]string, 0, len(m.pins))
	for name := range m.pins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Pins returns the wired pin names of a component, sorted.
func (m *WiringMap) Pins(component string) []string {
	pins := m.pins[component]
	names := make([]string, 0, len(pins))
	for name := range pins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the total number of pin entries.
func (m *WiringMap) Len() int {
	n := 0
	for _, pins := range m.pins {
		n += len(pins)
	}
	return n
}

// Nodes returns every wired pin as a "<component>:<pin>" identifier, sorted.
func (m *WiringMap) Nodes() []string {
	nodes := make([]string, 0, m.Len())
	for _, comp := range m.Components() {
		for _, pin := range m.Pins(comp) {
			nodes = append(nodes, Peer{Component: comp, Pin: pin}.NodeID())
		}
	}
	return nodes
}

// Links returns every wire once, ordered by the lexically smaller end.
// A pin wired to itself yields a link with A == B.
func (m *WiringMap) Links() []Link {
	var links []Link
	for _, comp := range m.Components() {
		for _, pin := range m.Pins(comp) {
			a := Peer{Component: comp, Pin: pin}
			b := m.pins[comp][pin]
			if less(b, a) {
				continue
			}
			links = append(links, Link{A: a, B: b})
		}
	}
	return links
}

func less(a, b Peer) bool {
	if a.Component != b.Component {
		return a.Component < b.Component
	}
	return a.Pin < b.Pin
}

// Each calls fn for every entry in deterministic order.
func (m *WiringMap) Each(fn func(at, peer Peer)) {
	for _, comp := range m.Components() {
		for _, pin := range m.Pins(comp) {
			fn(Peer{Component: comp, Pin: pin}, m.pins[comp][pin])
		}
	}
}

// CheckSymmetry returns an error describing the first entry whose peer does
// not point back, or nil if the map is symmetric.
func (m *WiringMap) CheckSymmetry() error {
	var err error
	m.Each(func(at, peer Peer) {
		if err != nil {
			return
		}
		back, ok := m.Peer(peer.Component, peer.Pin)
		if !ok {
			err = fmt.Errorf("%w: %s → %s has no reverse entry", ErrAsymmetric, at, peer)
			return
		}
		if back != at {
			err = fmt.Errorf("%w: %s → %s but %s → %s", ErrAsymmetric, at, peer, peer, back)
		}
	})
	return err
}

// Equal reports whether two maps hold exactly the same entries.
func (m *WiringMap) Equal(o *WiringMap) bool {
	if m.Len() != o.Len() || len(m.pins) != len(o.pins) {
		return false
	}
	for comp, pins := range m.pins {
		for pin, peer := range pins {
			if got, ok := o.Peer(comp, pin); !ok || got != peer {
				return false
			}
		}
	}
	return true
}

// Map returns a copy of the entries as plain nested maps.
func (m *WiringMap) Map() map[string]map[string]Peer {
	out := make(map[string]map[string]Peer, len(m.pins))
	for comp, pins := range m.pins {
		cp := make(map[string]Peer, len(pins))
		for pin, peer := range pins {
			cp[pin] = peer
		}
		out[comp] = cp
	}
	return out
}
