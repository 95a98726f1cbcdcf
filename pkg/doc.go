// Package pkg provides the core libraries for wiregraph.
//
// # Overview
//
// Wiregraph reads a small wiring language of "component" and "connect"
// statements embedded in arbitrary text, resolves every pin index to a
// symbolic pin name, and builds a symmetric pin-to-pin wiring map. The map
// can be exported as JSON or rendered as a Graphviz diagram.
//
// # Architecture
//
// The data flow through wiregraph:
//
//	source text
//	     ↓
//	[decl] parse statements, skip everything else
//	     ↓
//	[circuit.Source] components + connections in source order
//	     ↓
//	[wiring] resolve pins through [pins.Registry], build the map
//	     ↓
//	[circuit.WiringMap] + per-connection failures
//	     ↓
//	[graph] document / [render] DOT, SVG, PNG, PDF, table
//
// [pipeline] runs these stages with caching ([cache]) and observability
// hooks ([observability]); the CLI and [server] both go through it.
//
// # Quick Start
//
//	a := wiring.Analyze(text, pins.Default())
//	for _, l := range a.Map.Links() {
//	    fmt.Println(l.A, "--", l.B)
//	}
//	if err := a.Err(); err != nil {
//	    // some connections could not be wired; the rest are in a.Map
//	}
//
// # Main Packages
//
// [circuit] - Components, connections and the symmetric WiringMap.
//
// [decl] - Statement grammar and line classifier.
//
// [pins] - Pin tables per component type, generic "Pin <n>" fallback, TOML
// configuration.
//
// [wiring] - The builder: partial failure, last write wins.
//
// [graph] - Node-link serialization and the analysis Document.
//
// [render] - Output sinks: nodelink (Graphviz) and table (lipgloss).
//
// [pipeline] - Analyze → render with caching.
//
// [cache] - File, Redis and null caches with content-addressed keys.
//
// [store] - Analysis archive in memory or MongoDB.
//
// [server] - HTTP API.
//
// [errors] - Error codes and input validation.
//
// [observability] - Hook registry for metrics and tracing.
//
// [buildinfo] - Version information set at build time.
package pkg
