// Package circuit provides the data model shared by the parser, the pin
// resolver, the wiring builder and the renderers.
//
// # Overview
//
// A wiring description declares components and point-to-point connections
// between their pins. Parsing produces a [Source] holding ordered
// [Component] and [Connection] records; building resolves numeric pin
// indices to symbolic names and folds the connections into a [WiringMap].
//
// # WiringMap
//
// A [WiringMap] maps a component name to its wired pins, and each pin to the
// [Peer] on the other end of the wire:
//
//	m := circuit.NewWiringMap()
//	m.Connect(circuit.Peer{Component: "bt", Pin: "TXD"},
//	    circuit.Peer{Component: "uno", Pin: "Digital 0"})
//
//	peer, _ := m.Peer("uno", "Digital 0") // {bt TXD}
//
// The map is always symmetric: if A's pin P points to (B, Q) then B's pin Q
// points to (A, P). [WiringMap.Connect] is the only mutator and maintains
// this invariant, including when a later connection overwrites a pin slot
// that was already wired (last write wins; the displaced peer loses its
// back-reference). [WiringMap.CheckSymmetry] verifies the invariant and is
// used by tests and by decoders of untrusted input.
//
// # Rendering Contract
//
// Renderers consume the map read-only. Graph nodes are "<component>:<pin>"
// strings ([Peer.NodeID]) and edges are the map's links, each reported once
// by [WiringMap.Links].
//
// # Concurrency
//
// Values are request-local. A WiringMap is not safe for concurrent
// mutation; concurrent reads after building are fine.
package circuit
