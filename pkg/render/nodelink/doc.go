// Package nodelink renders wiring maps as node-link diagrams.
//
// # Overview
//
// Every wired pin becomes a node named "<component>:<pin>", grouped into one
// Graphviz cluster per component. Every wire becomes one undirected edge.
// Unwired pins and unresolved connections are not drawn.
//
// # Usage
//
// Convert an analysis to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(a, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// [Sinks] wraps all of these as [render.Sink] values for a [render.Registry].
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: cluster labels include the component type and pin nodes
//     include the pin index
//   - Scale: PNG resolution multiplier
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
