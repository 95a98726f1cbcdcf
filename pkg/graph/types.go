package graph

import (
	"github.com/matzehuels/wiregraph/pkg/circuit"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/wiring"
)

// =============================================================================
// Graph - Node-Link Wiring Serialization
// =============================================================================

// Graph is the node-link form of a wiring map.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is one wired pin.
type Node struct {
	ID        string `json:"id" bson:"id"` // "<component>:<pin>"
	Component string `json:"component" bson:"component"`
	Pin       string `json:"pin" bson:"pin"`
	Type      string `json:"type,omitempty" bson:"type,omitempty"` // component type, when known
}

// Edge is one undirected wire. From is the lexically smaller end.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// FromWiring converts a wiring map to node-link form. Nodes are sorted by
// ID; types are taken from src when it is non-nil.
func FromWiring(m *circuit.WiringMap, src *circuit.Source) Graph {
	out := Graph{Nodes: []Node{}, Edges: []Edge{}}
	m.Each(func(at, _ circuit.Peer) {
		n := Node{ID: at.NodeID(), Component: at.Component, Pin: at.Pin}
		if src != nil {
			if c, ok := src.Component(at.Component); ok {
				n.Type = c.Type
			}
		}
		out.Nodes = append(out.Nodes, n)
	})
	for _, l := range m.Links() {
		out.Edges = append(out.Edges, Edge{From: l.A.NodeID(), To: l.B.NodeID()})
	}
	return out
}

// =============================================================================
// Document - Full Analysis
// =============================================================================

// Failure is the serialized form of a [wiring.Failure].
type Failure struct {
	Index      int                `json:"index" bson:"index"`
	Line       int                `json:"line,omitempty" bson:"line,omitempty"`
	Connection circuit.Connection `json:"connection" bson:"connection"`
	Code       errors.Code        `json:"code" bson:"code"`
	Message    string             `json:"message" bson:"message"`
}

// Document is the canonical output of one analysis.
type Document struct {
	Components  []circuit.Component  `json:"components" bson:"components"`
	Connections []circuit.Connection `json:"connections" bson:"connections"`
	Wiring      *circuit.WiringMap   `json:"wiring" bson:"-"`
	Graph       Graph                `json:"graph" bson:"graph"`
	Failures    []Failure            `json:"failures" bson:"failures"`
	Applied     int                  `json:"applied" bson:"applied"`
	Skipped     int                  `json:"skipped" bson:"skipped"`
}

// FromAnalysis converts an analysis to its serialization format.
func FromAnalysis(a *wiring.Analysis) *Document {
	doc := &Document{
		Components:  append([]circuit.Component{}, a.Source.Components()...),
		Connections: append([]circuit.Connection{}, a.Source.Connections...),
		Wiring:      a.Map,
		Graph:       FromWiring(a.Map, a.Source),
		Failures:    make([]Failure, 0, len(a.Failures)),
		Applied:     a.Applied,
		Skipped:     a.Source.Skipped,
	}
	for _, f := range a.Failures {
		doc.Failures = append(doc.Failures, Failure{
			Index:      f.Index,
			Line:       f.Line,
			Connection: f.Connection,
			Code:       f.Code(),
			Message:    errors.UserMessage(f.Err),
		})
	}
	return doc
}

// Analysis rebuilds an analysis from the document. When the document has
// no wiring section (for example, one stored without it), the map is
// rebuilt from the graph edges.
func (d *Document) Analysis() (*wiring.Analysis, error) {
	src := circuit.NewSource()
	for _, c := range d.Components {
		src.Declare(c)
	}
	for _, c := range d.Connections {
		src.Connect(c)
	}
	src.Skipped = d.Skipped

	m := d.Wiring
	if m == nil {
		var err error
		if m, err = d.Graph.WiringMap(); err != nil {
			return nil, err
		}
	}

	res := &wiring.Result{Map: m, Applied: d.Applied}
	for _, f := range d.Failures {
		res.Failures = append(res.Failures, &wiring.Failure{
			Index:      f.Index,
			Line:       f.Line,
			Connection: f.Connection,
			Err:        errors.New(f.Code, "%s", f.Message),
		})
	}
	return &wiring.Analysis{Source: src, Result: res}, nil
}

// WiringMap rebuilds a wiring map from the graph's edges.
func (g Graph) WiringMap() (*circuit.WiringMap, error) {
	m := circuit.NewWiringMap()
	for _, e := range g.Edges {
		a, ok := circuit.ParseNodeID(e.From)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid node id %q", e.From)
		}
		b, ok := circuit.ParseNodeID(e.To)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid node id %q", e.To)
		}
		m.Connect(a, b)
	}
	return m, nil
}
