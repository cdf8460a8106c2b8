// Package acir defines the data model for compiled arithmetic circuits:
// witnesses, expressions, the closed opcode set, and the circuit wire format.
package acir

import (
	"fmt"
	"sort"

	"github.com/consensys/acvm/field"
)

// Witness names a circuit variable slot. It has no semantics beyond identity.
type Witness uint32

// Index returns the raw index of the witness.
func (w Witness) Index() uint32 {
	return uint32(w)
}

func (w Witness) String() string {
	return fmt.Sprintf("x%d", uint32(w))
}

// ConflictError reports an attempt to assign two different values to the same
// witness. A witness, once assigned, is never reassigned.
type ConflictError struct {
	Witness  Witness
	Existing field.Element
	Value    field.Element
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("witness %s already assigned %s, cannot assign %s",
		e.Witness, e.Existing.String(), e.Value.String())
}

// WitnessMap is the accumulating assignment of witnesses to field values for
// one solving session. It is owned by a single session and never shared.
type WitnessMap map[Witness]field.Element

// NewWitnessMap returns an empty assignment.
func NewWitnessMap() WitnessMap {
	return make(WitnessMap)
}

// Get returns the value assigned to w, if any.
func (m WitnessMap) Get(w Witness) (field.Element, bool) {
	v, ok := m[w]
	return v, ok
}

// Insert assigns value to w. Re-inserting an identical value is a no-op;
// inserting a different value returns a *ConflictError.
func (m WitnessMap) Insert(w Witness, value field.Element) error {
	if existing, ok := m[w]; ok {
		if !existing.Equal(&value) {
			return &ConflictError{Witness: w, Existing: existing, Value: value}
		}
		return nil
	}
	m[w] = value
	return nil
}

// IsSolved reports whether every given witness has an assignment.
func (m WitnessMap) IsSolved(witnesses ...Witness) bool {
	for _, w := range witnesses {
		if _, ok := m[w]; !ok {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the assignment.
func (m WitnessMap) Clone() WitnessMap {
	res := make(WitnessMap, len(m))
	for w, v := range m {
		res[w] = v
	}
	return res
}

// ToHex encodes the assignment with canonical hex strings as values. This is
// the exchange format at the caller boundary.
func (m WitnessMap) ToHex() map[Witness]string {
	res := make(map[Witness]string, len(m))
	for w, v := range m {
		res[w] = field.ToHex(&v)
	}
	return res
}

// WitnessMapFromHex decodes an assignment whose values are canonical hex
// strings.
func WitnessMapFromHex(values map[Witness]string) (WitnessMap, error) {
	res := make(WitnessMap, len(values))
	for w, s := range values {
		v, err := field.FromHex(s)
		if err != nil {
			return nil, fmt.Errorf("witness %s: %w", w, err)
		}
		res[w] = v
	}
	return res, nil
}

// Indices returns the assigned witness indices in ascending order.
func (m WitnessMap) Indices() []Witness {
	res := make([]Witness, 0, len(m))
	for w := range m {
		res = append(res, w)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}
