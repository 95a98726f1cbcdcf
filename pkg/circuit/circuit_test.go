package circuit

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func p(comp, pin string) Peer { return Peer{Component: comp, Pin: pin} }

func TestSourceDeclare(t *testing.T) {
	s := NewSource()
	s.Declare(Component{Name: "a", Type: "HC05"})
	s.Declare(Component{Name: "b", Type: "Relay", Pins: []int{2}})
	s.Declare(Component{Name: "a", Type: "Arduino"})

	if got := s.ComponentCount(); got != 2 {
		t.Fatalf("ComponentCount() = %d, want 2", got)
	}

	comps := s.Components()
	if comps[0].Name != "a" || comps[1].Name != "b" {
		t.Errorf("order = [%s %s], want [a b]", comps[0].Name, comps[1].Name)
	}

	a, ok := s.Component("a")
	if !ok {
		t.Fatal("component a not found")
	}
	if a.Type != "Arduino" {
		t.Errorf("a.Type = %q, want Arduino (last write wins)", a.Type)
	}
	if a.Pins == nil || len(a.Pins) != 0 {
		t.Errorf("a.Pins = %#v, want empty non-nil slice", a.Pins)
	}

	if _, ok := s.Component("missing"); ok {
		t.Error("Component(missing) should not be found")
	}
}

func TestWiringMapConnect(t *testing.T) {
	m := NewWiringMap()
	m.Connect(p("a", "TXD"), p("b", "RXD"))

	if got, ok := m.Peer("a", "TXD"); !ok || got != p("b", "RXD") {
		t.Errorf("a:TXD → %v (%v), want b:RXD", got, ok)
	}
	if got, ok := m.Peer("b", "RXD"); !ok || got != p("a", "TXD") {
		t.Errorf("b:RXD → %v (%v), want a:TXD", got, ok)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
	if err := m.CheckSymmetry(); err != nil {
		t.Errorf("CheckSymmetry() = %v", err)
	}
}

func TestWiringMapOverwrite(t *testing.T) {
	tests := []struct {
		name  string
		wires [][2]Peer
		want  map[string]Peer
		gone  []string
	}{
		{
			name: "same from pin rewired",
			wires: [][2]Peer{
				{p("A", "Pin 0"), p("B", "Pin 0")},
				{p("A", "Pin 0"), p("C", "Pin 0")},
			},
			want: map[string]Peer{
				"A:Pin 0": p("C", "Pin 0"),
				"C:Pin 0": p("A", "Pin 0"),
			},
			gone: []string{"B:Pin 0"},
		},
		{
			name: "same to pin rewired",
			wires: [][2]Peer{
				{p("A", "Pin 0"), p("B", "Pin 0")},
				{p("C", "Pin 1"), p("B", "Pin 0")},
			},
			want: map[string]Peer{
				"B:Pin 0": p("C", "Pin 1"),
				"C:Pin 1": p("B", "Pin 0"),
			},
			gone: []string{"A:Pin 0"},
		},
		{
			name: "duplicate wire",
			wires: [][2]Peer{
				{p("A", "Pin 0"), p("B", "Pin 0")},
				{p("A", "Pin 0"), p("B", "Pin 0")},
			},
			want: map[string]Peer{
				"A:Pin 0": p("B", "Pin 0"),
				"B:Pin 0": p("A", "Pin 0"),
			},
		},
		{
			name: "reversed duplicate wire",
			wires: [][2]Peer{
				{p("A", "Pin 0"), p("B", "Pin 0")},
				{p("B", "Pin 0"), p("A", "Pin 0")},
			},
			want: map[string]Peer{
				"A:Pin 0": p("B", "Pin 0"),
				"B:Pin 0": p("A", "Pin 0"),
			},
		},
		{
			name: "pin wired to itself",
			wires: [][2]Peer{
				{p("A", "Pin 0"), p("A", "Pin 0")},
			},
			want: map[string]Peer{
				"A:Pin 0": p("A", "Pin 0"),
			},
		},
		{
			name: "self loop then rewired",
			wires: [][2]Peer{
				{p("A", "Pin 0"), p("A", "Pin 0")},
				{p("A", "Pin 0"), p("B", "Pin 3")},
			},
			want: map[string]Peer{
				"A:Pin 0": p("B", "Pin 3"),
				"B:Pin 3": p("A", "Pin 0"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewWiringMap()
			for _, w := range tt.wires {
				m.Connect(w[0], w[1])
			}

			if err := m.CheckSymmetry(); err != nil {
				t.Fatalf("CheckSymmetry() = %v", err)
			}
			if m.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", m.Len(), len(tt.want))
			}
			for id, want := range tt.want {
				at, _ := ParseNodeID(id)
				if got, ok := m.Peer(at.Component, at.Pin); !ok || got != want {
					t.Errorf("%s → %v (%v), want %v", id, got, ok, want)
				}
			}
			for _, id := range tt.gone {
				at, _ := ParseNodeID(id)
				if got, ok := m.Peer(at.Component, at.Pin); ok {
					t.Errorf("%s should be unwired, got %v", id, got)
				}
			}
		})
	}
}

func TestWiringMapOrdering(t *testing.T) {
	m := NewWiringMap()
	m.Connect(p("uno", "Digital 1"), p("bt", "RXD"))
	m.Connect(p("uno", "Digital 0"), p("bt", "TXD"))
	m.Connect(p("bt", "GND"), p("uno", "GND"))

	if got, want := m.Components(), []string{"bt", "uno"}; !slices.Equal(got, want) {
		t.Errorf("Components() = %v, want %v", got, want)
	}
	if got, want := m.Pins("bt"), []string{"GND", "RXD", "TXD"}; !slices.Equal(got, want) {
		t.Errorf("Pins(bt) = %v, want %v", got, want)
	}
	wantNodes := []string{"bt:GND", "bt:RXD", "bt:TXD", "uno:Digital 0", "uno:Digital 1", "uno:GND"}
	if got := m.Nodes(); !slices.Equal(got, wantNodes) {
		t.Errorf("Nodes() = %v, want %v", got, wantNodes)
	}

	links := m.Links()
	if len(links) != 3 {
		t.Fatalf("Links() = %d links, want 3", len(links))
	}
	if links[0].A != p("bt", "GND") || links[0].B != p("uno", "GND") {
		t.Errorf("first link = %v, want bt:GND -- uno:GND", links[0])
	}
	for _, l := range links {
		if less(l.B, l.A) {
			t.Errorf("link %v not normalized", l)
		}
	}
}

func TestWiringMapEqual(t *testing.T) {
	build := func() *WiringMap {
		m := NewWiringMap()
		m.Connect(p("a", "1"), p("b", "2"))
		m.Connect(p("a", "3"), p("c", "4"))
		return m
	}

	if !build().Equal(build()) {
		t.Error("identical maps should be equal")
	}

	other := build()
	other.Connect(p("a", "3"), p("c", "5"))
	if build().Equal(other) {
		t.Error("maps with different peers should not be equal")
	}
	if NewWiringMap().Equal(build()) {
		t.Error("empty map should not equal non-empty map")
	}
}

func TestWiringMapJSON(t *testing.T) {
	m := NewWiringMap()
	m.Connect(p("bt", "TXD"), p("uno", "Digital 0"))

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"bt":{"TXD":{"component":"uno","pin":"Digital 0"}},"uno":{"Digital 0":{"component":"bt","pin":"TXD"}}}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var back WiringMap
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !back.Equal(m) {
		t.Error("decoded map differs from original")
	}
}

func TestWiringMapUnmarshalAsymmetric(t *testing.T) {
	data := `{"bt":{"TXD":{"component":"uno","pin":"Digital 0"}}}`
	var m WiringMap
	err := json.Unmarshal([]byte(data), &m)
	if !errors.Is(err, ErrAsymmetric) {
		t.Errorf("Unmarshal error = %v, want ErrAsymmetric", err)
	}
}

func TestParseNodeID(t *testing.T) {
	tests := []struct {
		in   string
		want Peer
		ok   bool
	}{
		{"uno:Digital 13", p("uno", "Digital 13"), true},
		{"a:b:c", p("a", "b:c"), true},
		{"nocolon", Peer{}, false},
		{":pin", Peer{}, false},
		{"comp:", Peer{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNodeID(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseNodeID(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
