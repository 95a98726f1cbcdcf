package decl

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/wiregraph/pkg/circuit"
)

func TestClassifyComponent(t *testing.T) {
	tests := []struct {
		name string
		line string
		want circuit.Component
	}{
		{
			name: "no pin group",
			line: "component sensor1 HC05",
			want: circuit.Component{Name: "sensor1", Type: "HC05", Pins: []int{}},
		},
		{
			name: "single count",
			line: "component r1 Relay(2)",
			want: circuit.Component{Name: "r1", Type: "Relay", Pins: []int{2}},
		},
		{
			name: "index list with spaces",
			line: "  component   strip  LedStrip ( 0 , 3,7 )  ",
			want: circuit.Component{Name: "strip", Type: "LedStrip", Pins: []int{0, 3, 7}},
		},
		{
			name: "trailing semicolon and comment",
			line: "component uno Arduino; // main board",
			want: circuit.Component{Name: "uno", Type: "Arduino", Pins: []int{}},
		},
		{
			name: "numeric-leading names",
			line: "component 1wire 555",
			want: circuit.Component{Name: "1wire", Type: "555", Pins: []int{}},
		},
		{
			name: "keyword as name",
			line: "component to connect",
			want: circuit.Component{Name: "to", Type: "connect", Pins: []int{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Classify(tt.line, 7)
			decl, ok := st.(ComponentDecl)
			if !ok {
				t.Fatalf("Classify(%q) = %T, want ComponentDecl (%v)", tt.line, st, st)
			}
			tt.want.Line = 7
			if !reflect.DeepEqual(decl.Component, tt.want) {
				t.Errorf("got %#v, want %#v", decl.Component, tt.want)
			}
			if st.LineNumber() != 7 {
				t.Errorf("LineNumber() = %d, want 7", st.LineNumber())
			}
		})
	}
}

func TestClassifyConnection(t *testing.T) {
	tests := []struct {
		name string
		line string
		want circuit.Connection
	}{
		{
			name: "simple",
			line: "connect A 0 to B 1",
			want: circuit.Connection{
				From: circuit.Endpoint{Component: "A", Pin: 0},
				To:   circuit.Endpoint{Component: "B", Pin: 1},
			},
		},
		{
			name: "extra whitespace and semicolon",
			line: "\tconnect   bt  2   to uno 0 ;",
			want: circuit.Connection{
				From: circuit.Endpoint{Component: "bt", Pin: 2},
				To:   circuit.Endpoint{Component: "uno", Pin: 0},
			},
		},
		{
			name: "self connection",
			line: "connect A 3 to A 3",
			want: circuit.Connection{
				From: circuit.Endpoint{Component: "A", Pin: 3},
				To:   circuit.Endpoint{Component: "A", Pin: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Classify(tt.line, 1)
			decl, ok := st.(ConnectionDecl)
			if !ok {
				t.Fatalf("Classify(%q) = %T, want ConnectionDecl (%v)", tt.line, st, st)
			}
			tt.want.Line = 1
			if decl.Connection != tt.want {
				t.Errorf("got %#v, want %#v", decl.Connection, tt.want)
			}
		})
	}
}

func TestClassifyUnrecognized(t *testing.T) {
	lines := []string{
		"// just a comment",
		"# heading",
		"component",
		"component onlyname",
		"component a b c",
		"component a b()",
		"component a b(1,)",
		"component a b(-1)",
		"component a b(1) extra",
		"Component a HC05",
		"connect A 0 to B",
		"connect A -1 to B 0",
		"connect A 0 B 0",
		"connect A x to B 0",
		"connect A 0 to B 0 and more",
		"connect A 99999999999999999999999 to B 0",
		"led = Actuator(LED_PIN);",
		"void setup() {",
		"Serial.begin(9600);",
		"The sensor is wired to pin 2.",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			st := Classify(line, 3)
			u, ok := st.(Unrecognized)
			if !ok {
				t.Fatalf("Classify(%q) = %#v, want Unrecognized", line, st)
			}
			if u.Text != line || u.Line != 3 {
				t.Errorf("Unrecognized = {%d %q}, want {3 %q}", u.Line, u.Text, line)
			}
			if u.Err == nil {
				t.Error("Unrecognized.Err should explain the rejection")
			}
		})
	}
}

func TestParse(t *testing.T) {
	text := strings.Join([]string{
		"// generated wiring",
		"component bt HC05",
		"component uno Arduino",
		"",
		"component r1 Relay(2)",
		"connect bt 2 to uno 0",
		"connect bt 3 to uno 1",
		"void loop() {}",
		"component bt HC05(5)",
		"connect r1 0 to uno 7",
		"connect bt 2 to uno 0",
	}, "\r\n")

	src := Parse(text)

	if got := src.ComponentCount(); got != 3 {
		t.Fatalf("ComponentCount() = %d, want 3", got)
	}
	names := []string{}
	for _, c := range src.Components() {
		names = append(names, c.Name)
	}
	if !reflect.DeepEqual(names, []string{"bt", "uno", "r1"}) {
		t.Errorf("component order = %v, want [bt uno r1]", names)
	}

	bt, _ := src.Component("bt")
	if !reflect.DeepEqual(bt.Pins, []int{5}) || bt.Line != 9 {
		t.Errorf("bt = %#v, want redeclaration from line 9", bt)
	}

	if got := len(src.Connections); got != 4 {
		t.Fatalf("len(Connections) = %d, want 4 (duplicates kept)", got)
	}
	if src.Connections[0].Line != 6 || src.Connections[3].Line != 11 {
		t.Errorf("connection lines = %d, %d; want 6, 11", src.Connections[0].Line, src.Connections[3].Line)
	}

	if src.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", src.Skipped)
	}
}

func TestParseIgnorableOnly(t *testing.T) {
	text := `
// This sketch reads a sensor.
#include <SoftwareSerial.h>

Nothing here declares a component.
	`

	src := Parse(text)
	if src.ComponentCount() != 0 {
		t.Errorf("ComponentCount() = %d, want 0", src.ComponentCount())
	}
	if len(src.Connections) != 0 {
		t.Errorf("len(Connections) = %d, want 0", len(src.Connections))
	}
}

func TestStatementsSkipsBlankLines(t *testing.T) {
	sts := Statements("\n\ncomponent a B\n   \nconnect a 0 to a 1\n")
	if len(sts) != 2 {
		t.Fatalf("len(Statements) = %d, want 2", len(sts))
	}
	if _, ok := sts[0].(ComponentDecl); !ok || sts[0].LineNumber() != 3 {
		t.Errorf("sts[0] = %#v, want ComponentDecl on line 3", sts[0])
	}
	if _, ok := sts[1].(ConnectionDecl); !ok || sts[1].LineNumber() != 5 {
		t.Errorf("sts[1] = %#v, want ConnectionDecl on line 5", sts[1])
	}
}

func TestParseReader(t *testing.T) {
	src, err := ParseReader(strings.NewReader("component a HC05\nconnect a 0 to a 1"))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	if src.ComponentCount() != 1 || len(src.Connections) != 1 {
		t.Errorf("got %d components, %d connections; want 1, 1", src.ComponentCount(), len(src.Connections))
	}
}
