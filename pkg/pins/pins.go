// Package pins resolves numeric pin indices to symbolic pin names.
//
// Known component types have a fixed, ordered pin-name [Table]; the index
// selects a name from it. Any other type gets a synthesized "Pin <index>"
// name bounded by the component's own declared pins. Out-of-range indices
// are errors with code [errors.ErrCodePinOutOfRange]; the resolver never
// wraps or clamps.
//
// Tables live in a [Registry], an immutable type → table lookup that can be
// extended from code ([Registry.With]) or TOML ([Decode], [LoadFile]):
//
//	[[component]]
//	type = "L298N"
//	pins = ["IN1", "IN2", "IN3", "IN4", "ENA", "ENB"]
//
// A Registry is safe for concurrent use once built.
package pins

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/wiregraph/pkg/circuit"
	"github.com/matzehuels/wiregraph/pkg/errors"
)

// Table is the ordered pin-name list of one component type.
type Table struct {
	Type string   `toml:"type" json:"type"`
	Pins []string `toml:"pins" json:"pins"`
}

// Validate checks the type name and pin names of t.
func (t Table) Validate() error {
	if err := errors.ValidateTypeName(t.Type); err != nil {
		return err
	}
	if len(t.Pins) == 0 {
		return errors.New(errors.ErrCodeInvalidPinTable, "%s: pin list cannot be empty", t.Type)
	}
	seen := make(map[string]bool, len(t.Pins))
	for _, p := range t.Pins {
		if err := errors.ValidatePinName(p); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPinTable, err, "%s", t.Type)
		}
		if seen[p] {
			return errors.New(errors.ErrCodeInvalidPinTable, "%s: duplicate pin name %q", t.Type, p)
		}
		seen[p] = true
	}
	return nil
}

// Registry maps component types to pin tables. The zero value has no
// tables and resolves every type generically.
type Registry struct {
	tables map[string]Table
}

// NewRegistry builds a registry from tables. Later tables override earlier
// ones with the same type.
func NewRegistry(tables ...Table) (*Registry, error) {
	r := &Registry{tables: make(map[string]Table, len(tables))}
	for _, t := range tables {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		r.tables[t.Type] = Table{Type: t.Type, Pins: slices.Clone(t.Pins)}
	}
	return r, nil
}

// With returns a new registry holding r's tables plus the given ones.
// r itself is not modified.
func (r *Registry) With(tables ...Table) (*Registry, error) {
	all := r.Tables()
	all = append(all, tables...)
	return NewRegistry(all...)
}

// Lookup returns the table for a component type.
func (r *Registry) Lookup(typ string) (Table, bool) {
	if r == nil {
		return Table{}, false
	}
	t, ok := r.tables[typ]
	return t, ok
}

// Tables returns all tables sorted by type.
func (r *Registry) Tables() []Table {
	if r == nil {
		return nil
	}
	out := make([]Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Table) int { return strings.Compare(a.Type, b.Type) })
	return out
}

// Fingerprint returns a stable hash of the registry contents. Cache keys
// include it so results computed with different tables never collide.
func (r *Registry) Fingerprint() string {
	h := sha256.New()
	for _, t := range r.Tables() {
		fmt.Fprintf(h, "%s\x00%s\x01", t.Type, strings.Join(t.Pins, "\x00"))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Resolve returns the symbolic name of pin index of component c.
func (r *Registry) Resolve(c circuit.Component, index int) (string, error) {
	if index < 0 {
		return "", outOfRange(c, index, "negative index")
	}

	if t, ok := r.Lookup(c.Type); ok {
		if index >= len(t.Pins) {
			return "", outOfRange(c, index, fmt.Sprintf("%s has %d pins (0-%d)", t.Type, len(t.Pins), len(t.Pins)-1))
		}
		return t.Pins[index], nil
	}

	switch len(c.Pins) {
	case 0:
		// Nothing declared: any index names a pin.
	case 1:
		if n := c.Pins[0]; index >= n {
			return "", outOfRange(c, index, fmt.Sprintf("declared %d pins", n))
		}
	default:
		if !slices.Contains(c.Pins, index) {
			return "", outOfRange(c, index, fmt.Sprintf("declared pins %v", c.Pins))
		}
	}
	return GenericName(index), nil
}

// GenericName is the synthesized name of a pin on an unknown component type.
func GenericName(index int) string {
	return fmt.Sprintf("Pin %d", index)
}

func outOfRange(c circuit.Component, index int, detail string) error {
	return errors.New(errors.ErrCodePinOutOfRange, "pin %d of %s (%s): %s", index, c.Name, c.Type, detail)
}
