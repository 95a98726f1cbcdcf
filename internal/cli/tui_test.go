package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/wiregraph/pkg/pins"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m InspectModel, keys ...string) InspectModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(InspectModel)
	}
	return m
}

func TestInspectModelRows(t *testing.T) {
	m := NewInspectModel(wiring.Analyze(robot, pins.Default()), "robot.ino")

	if len(m.Rows) != 6 {
		t.Fatalf("len(Rows) = %d, want 6", len(m.Rows))
	}
	first := m.Rows[0]
	if first.Component != "bt" || first.Type != "HC05" || first.Pin != "RXD" {
		t.Errorf("Rows[0] = %+v, want bt HC05 RXD", first)
	}
	if len(m.Failures) != 1 || !strings.Contains(m.Failures[0], "line 8") {
		t.Errorf("Failures = %v, want one on line 8", m.Failures)
	}
}

func TestInspectModelNavigation(t *testing.T) {
	m := NewInspectModel(wiring.Analyze(robot, pins.Default()), "")
	m.Height = 2

	m = update(m, "k")
	if m.Cursor != 0 {
		t.Errorf("Cursor after up at top = %d, want 0", m.Cursor)
	}
	m = update(m, "down", "j", "j")
	if m.Cursor != 3 || m.Offset != 2 {
		t.Errorf("Cursor, Offset = %d, %d; want 3, 2", m.Cursor, m.Offset)
	}
	m = update(m, "G")
	if m.Cursor != len(m.Rows)-1 {
		t.Errorf("Cursor after G = %d, want last", m.Cursor)
	}
	m = update(m, "g")
	if m.Cursor != 0 || m.Offset != 0 {
		t.Errorf("Cursor, Offset after g = %d, %d; want 0, 0", m.Cursor, m.Offset)
	}
}

func TestInspectModelFollowWire(t *testing.T) {
	m := NewInspectModel(wiring.Analyze(robot, pins.Default()), "")
	m = update(m, "enter")

	got := m.Rows[m.Cursor]
	if got.Component != "uno" || got.Pin != "Digital 1" {
		t.Errorf("after enter on bt:RXD cursor is on %s:%s, want uno:Digital 1", got.Component, got.Pin)
	}
	m = update(m, "enter")
	if r := m.Rows[m.Cursor]; r.Component != "bt" || r.Pin != "RXD" {
		t.Errorf("following back landed on %s:%s", r.Component, r.Pin)
	}
}

func TestInspectModelView(t *testing.T) {
	m := NewInspectModel(wiring.Analyze(robot, pins.Default()), "robot.ino")

	view := m.View()
	for _, want := range []string{"robot.ino", "Digital 0", "[1/6]", "1 skipped"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = update(m, "tab")
	if !strings.Contains(m.View(), "connect m1 5 to uno 10") {
		t.Errorf("failure view missing connection:\n%s", m.View())
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q did not quit")
	}
}

func TestInspectModelEmpty(t *testing.T) {
	m := NewInspectModel(wiring.Analyze("nothing here", pins.Default()), "")
	m = update(m, "j", "enter")
	if !strings.Contains(m.View(), "no wires") {
		t.Errorf("empty view = %q", m.View())
	}
}
