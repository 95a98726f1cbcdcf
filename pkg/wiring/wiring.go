// Package wiring builds the symmetric pin-level wiring map of a circuit.
//
// [Build] walks the parsed connections in source order. Each one looks up
// both components, resolves both pin indices to names, and wires the two
// pins together in a [circuit.WiringMap]. A connection that cannot be
// resolved is recorded as a [Failure] and skipped; it never aborts the
// build, so one bad line does not hide the rest of the circuit.
//
// Later connections on an already wired pin replace the earlier wire. The
// displaced peer loses its back-reference, so every entry in the final map
// has a matching reverse entry.
package wiring

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/matzehuels/wiregraph/pkg/circuit"
	"github.com/matzehuels/wiregraph/pkg/decl"
	"github.com/matzehuels/wiregraph/pkg/errors"
)

// Resolver maps a pin index of a component to its symbolic name.
// *pins.Registry implements it.
type Resolver interface {
	Resolve(c circuit.Component, index int) (string, error)
}

// Failure is one connection that could not be applied.
type Failure struct {
	Index      int                // position in Source.Connections
	Line       int                // 1-based source line, 0 if unknown
	Connection circuit.Connection // the statement as written
	Err        error              // UNRESOLVED_REFERENCE or PIN_OUT_OF_RANGE
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Line > 0 {
		return fmt.Sprintf("line %d: %s: %v", f.Line, f.Connection, f.Err)
	}
	return fmt.Sprintf("%s: %v", f.Connection, f.Err)
}

// Unwrap returns the underlying error so errors.Is sees its code.
func (f *Failure) Unwrap() error { return f.Err }

// Code returns the failure's error code.
func (f *Failure) Code() errors.Code { return errors.GetCode(f.Err) }

// Result is the outcome of [Build].
type Result struct {
	Map      *circuit.WiringMap
	Failures []*Failure
	Applied  int // connections written to Map, including ones later overwritten
}

// Err aggregates all failures into one error, or returns nil if every
// connection was applied.
func (r *Result) Err() error {
	var merr *multierror.Error
	for _, f := range r.Failures {
		merr = multierror.Append(merr, f)
	}
	return merr.ErrorOrNil()
}

// Build resolves every connection of src and wires it into a new map.
func Build(src *circuit.Source, r Resolver) *Result {
	res := &Result{Map: circuit.NewWiringMap()}
	for i, conn := range src.Connections {
		from, to, err := resolve(src, r, conn)
		if err != nil {
			res.Failures = append(res.Failures, &Failure{
				Index:      i,
				Line:       conn.Line,
				Connection: conn,
				Err:        err,
			})
			continue
		}
		res.Map.Connect(from, to)
		res.Applied++
	}
	return res
}

func resolve(src *circuit.Source, r Resolver, conn circuit.Connection) (from, to circuit.Peer, err error) {
	a, ok := src.Component(conn.From.Component)
	if !ok {
		return from, to, unresolved(conn.From.Component)
	}
	b, ok := src.Component(conn.To.Component)
	if !ok {
		return from, to, unresolved(conn.To.Component)
	}

	fromPin, err := r.Resolve(a, conn.From.Pin)
	if err != nil {
		return from, to, err
	}
	toPin, err := r.Resolve(b, conn.To.Pin)
	if err != nil {
		return from, to, err
	}
	return circuit.Peer{Component: a.Name, Pin: fromPin}, circuit.Peer{Component: b.Name, Pin: toPin}, nil
}

func unresolved(name string) error {
	return errors.New(errors.ErrCodeUnresolvedReference, "component %q is not declared", name)
}

// Analysis is a parsed source together with its built wiring.
type Analysis struct {
	Source *circuit.Source
	*Result
}

// Analyze parses text and builds its wiring map.
func Analyze(text string, r Resolver) *Analysis {
	src := decl.Parse(text)
	return &Analysis{Source: src, Result: Build(src, r)}
}

// Component returns the declaration of a wired component name.
func (a *Analysis) Component(name string) (circuit.Component, bool) {
	return a.Source.Component(name)
}
