package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/wiregraph/pkg/pins"
	"github.com/matzehuels/wiregraph/pkg/render"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

const circuitText = `component bt HC05
component uno Arduino
component r1 Relay(2)
connect bt 2 to uno 0
connect bt 3 to uno 1
connect r1 0 to uno 13`

func analyze(t *testing.T, text string) *wiring.Analysis {
	t.Helper()
	a := wiring.Analyze(text, pins.Default())
	if err := a.Err(); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return a
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(analyze(t, circuitText), Options{})

	for _, want := range []string{
		"graph G {",
		`subgraph "cluster_bt"`,
		`subgraph "cluster_uno"`,
		`label="bt";`,
		`"bt:TXD" [label="TXD"];`,
		`"uno:Digital 0" [label="Digital 0"];`,
		`"bt:TXD" -- "uno:Digital 0";`,
		`"bt:RXD" -- "uno:Digital 1";`,
		`"r1:Pin 0" -- "uno:Digital 13";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() should produce an undirected graph")
	}
	if n := strings.Count(dot, " -- "); n != 3 {
		t.Errorf("edge count = %d, want 3", n)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(analyze(t, circuitText), Options{Detailed: true})

	for _, want := range []string{
		`label="bt (HC05)";`,
		`label="r1 (Relay)";`,
		`"bt:TXD" [label="TXD [2]"];`,
		`"uno:Digital 13" [label="Digital 13 [13]"];`,
		`"r1:Pin 0" [label="Pin 0 [0]"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() detailed output missing %s\n%s", want, dot)
		}
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(analyze(t, "nothing to see"), Options{})
	if strings.Contains(dot, "subgraph") || strings.Contains(dot, "--") {
		t.Errorf("empty analysis should produce no clusters or edges:\n%s", dot)
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	a := analyze(t, circuitText)
	if ToDOT(a, Options{}) != ToDOT(analyze(t, circuitText), Options{}) {
		t.Error("ToDOT() is not deterministic")
	}
}

func TestPinLabel_CustomRegistry(t *testing.T) {
	reg, err := pins.Default().With(pins.Table{Type: "Buzzer", Pins: []string{"SIG", "GND"}})
	if err != nil {
		t.Fatal(err)
	}
	a := wiring.Analyze("component b Buzzer\ncomponent s Sensor\nconnect b 1 to s 1", reg)
	dot := ToDOT(a, Options{Detailed: true, Pins: reg})
	if !strings.Contains(dot, `"b:GND" [label="GND [1]"];`) {
		t.Errorf("custom table index missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(analyze(t, circuitText), Options{})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}

	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
	if !strings.Contains(string(svg), "TXD") {
		t.Error("RenderSVG() output missing pin label")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	_, err := RenderSVG(context.Background(), `not valid DOT {{{`)
	if err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}

func TestSinks(t *testing.T) {
	reg := render.NewRegistry(Sinks(Options{})...)
	want := []string{"dot", "pdf", "png", "svg"}
	if got := reg.Formats(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Formats() = %v, want %v", got, want)
	}

	s, err := reg.Get("DOT")
	if err != nil {
		t.Fatalf("Get(DOT): %v", err)
	}
	out, err := s.Render(context.Background(), analyze(t, circuitText))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(string(out), "graph G {") {
		t.Errorf("dot sink output = %q", out)
	}

	if NewSink("gif", Options{}) != nil {
		t.Error("NewSink(gif) should be nil")
	}
}
