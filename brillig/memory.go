package brillig

import (
	"fmt"

	"github.com/consensys/acvm/field"
)

// maxMemory bounds the linear memory, in cells. Catches runaway pointers
// before they exhaust the host.
const maxMemory = 1 << 24

// Memory is the interpreter's flat addressable memory of field elements.
// Stores past the end grow it zero-filled; loads past the end are errors.
type Memory struct {
	values []field.Element
}

// NewMemory returns a memory preloaded with values.
func NewMemory(values []field.Element) *Memory {
	m := &Memory{values: make([]field.Element, len(values))}
	copy(m.values, values)
	return m
}

// Load returns the cell at addr.
func (m *Memory) Load(addr uint64) (field.Element, error) {
	if addr >= uint64(len(m.values)) {
		return field.Element{}, fmt.Errorf("load at address %d out of bounds (size %d)", addr, len(m.values))
	}
	return m.values[addr], nil
}

// Store writes value at addr, growing the memory zero-filled if needed.
func (m *Memory) Store(addr uint64, value field.Element) error {
	if addr >= maxMemory {
		return fmt.Errorf("store at address %d past maximum", addr)
	}
	if addr >= uint64(len(m.values)) {
		grown := make([]field.Element, addr+1)
		copy(grown, m.values)
		m.values = grown
	}
	m.values[addr] = value
	return nil
}

// Len returns the current memory size in cells.
func (m *Memory) Len() int {
	return len(m.values)
}

// Values returns the underlying cells.
func (m *Memory) Values() []field.Element {
	return m.values
}
