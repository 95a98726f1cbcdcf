package circuit

import (
	"encoding/json"
	"errors"
)

// ErrAsymmetric is returned by [WiringMap.CheckSymmetry] and by JSON
// decoding when an entry's peer does not point back to it.
var ErrAsymmetric = errors.New("wiring map is not symmetric")

// MarshalJSON encodes the map as a nested object:
//
//	{"bt": {"TXD": {"component": "uno", "pin": "Digital 0"}}, ...}
//
// encoding/json sorts map keys, so the output is deterministic.
func (m *WiringMap) MarshalJSON() ([]byte, error) {
	if m == nil || m.pins == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.pins)
}

// UnmarshalJSON decodes the nested object form and rejects asymmetric input.
func (m *WiringMap) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]Peer
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := NewWiringMap()
	for comp, pins := range raw {
		for pin, peer := range pins {
			out.set(Peer{Component: comp, Pin: pin}, peer)
		}
	}
	if err := out.CheckSymmetry(); err != nil {
		return err
	}
	*m = *out
	return nil
}
