// Package render turns wiring analyses into output artifacts.
//
// # Overview
//
// Rendering is a pluggable sink: anything that implements [Sink] can turn a
// [wiring.Analysis] into bytes of one format. A [Registry] looks sinks up by
// format name so the CLI and the HTTP API can share one set of renderers.
//
// Built-in sinks:
//
//   - [JSONSink]: the analysis document from pkg/graph
//   - [nodelink] sinks: Graphviz DOT, SVG, PNG and PDF wiring diagrams
//   - [table] sink: a plain-text pin table for terminals
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// When rsvg-convert is not installed the conversion fails with an
// UNSUPPORTED error; SVG and DOT output keep working.
//
// [nodelink]: github.com/matzehuels/wiregraph/pkg/render/nodelink
// [table]: github.com/matzehuels/wiregraph/pkg/render/table
package render
