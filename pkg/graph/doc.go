// Package graph provides serialization types for wiring analyses.
//
// This package defines the canonical wire format for wiregraph's output,
// used for JSON files, API responses, the analysis archive, and the cache.
//
// # Core Types
//
//   - [Document]: One complete analysis: components, connections, the
//     wiring map, its node-link [Graph], and per-connection failures
//   - [Graph]: Node-link form of a wiring map
//   - [Node], [Edge]: Pin nodes and undirected wires between them
//
// # Graph Serialization
//
// Nodes are pins, identified as "<component>:<pin>". Every wire appears
// exactly once as an edge from the lexically smaller end:
//
//	{
//	  "nodes": [
//	    {"id": "bt:TXD", "component": "bt", "pin": "TXD", "type": "HC05"},
//	    {"id": "uno:Digital 0", "component": "uno", "pin": "Digital 0", "type": "Arduino"}
//	  ],
//	  "edges": [{"from": "bt:TXD", "to": "uno:Digital 0"}]
//	}
//
// # Document Round Trip
//
// A Document can be turned back into a [wiring.Analysis] without the source
// text, which is how the CLI re-renders the output of a previous parse:
//
//	doc := graph.FromAnalysis(a)
//	data, _ := graph.MarshalDocument(doc)
//	back, _ := graph.UnmarshalDocument(data)
//	a2, _ := back.Analysis()
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
