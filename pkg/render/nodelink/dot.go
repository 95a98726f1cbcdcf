package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wiregraph/pkg/circuit"
	"github.com/matzehuels/wiregraph/pkg/pins"
	"github.com/matzehuels/wiregraph/pkg/render"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed labels clusters "name (type)" and pins "name [index]".
	// When false, clusters show the component name and pins their name.
	Detailed bool

	// Scale is the PNG resolution multiplier. Zero means 1.
	Scale float64

	// Pins looks up pin indices for detailed labels. Nil uses [pins.Default].
	Pins *pins.Registry
}

// ToDOT converts an analysis to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(a *wiring.Analysis, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for _, name := range a.Map.Components() {
		c, known := a.Component(name)
		fmt.Fprintf(&buf, "\n  subgraph %q {\n", "cluster_"+name)
		fmt.Fprintf(&buf, "    label=%q;\n", clusterLabel(name, c, known, opts.Detailed))
		buf.WriteString("    style=\"rounded\";\n")
		for _, pin := range a.Map.Pins(name) {
			id := circuit.Peer{Component: name, Pin: pin}.NodeID()
			fmt.Fprintf(&buf, "    %q [label=%q];\n", id, pinLabel(c, known, pin, opts))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, l := range a.Map.Links() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", l.A.NodeID(), l.B.NodeID())
	}

	buf.WriteString("}\n")
	return buf.String()
}

func clusterLabel(name string, c circuit.Component, known, detailed bool) string {
	if !detailed || !known {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, c.Type)
}

func pinLabel(c circuit.Component, known bool, pin string, opts Options) string {
	if !opts.Detailed || !known {
		return pin
	}
	reg := opts.Pins
	if reg == nil {
		reg = pins.Default()
	}
	if t, ok := reg.Lookup(c.Type); ok {
		if i := slices.Index(t.Pins, pin); i >= 0 {
			return fmt.Sprintf("%s [%d]", pin, i)
		}
		return pin
	}
	if idx, ok := strings.CutPrefix(pin, "Pin "); ok {
		if _, err := strconv.Atoi(idx); err == nil {
			return fmt.Sprintf("%s [%s]", pin, idx)
		}
	}
	return pin
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
