package brillig

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/acvm/field"
)

// maxRegisters bounds the register file. Catches obvious erroneous register
// indices coming from malformed bytecode.
const maxRegisters = 1 << 16

// Registers is the interpreter's register file. Reads of registers that were
// never written are errors rather than zeroes: such an access is far more
// likely a bytecode mistake than an intended default.
type Registers struct {
	values []field.Element
	init   *bitset.BitSet
}

// NewRegisters returns a register file preloaded with values, all marked
// initialized.
func NewRegisters(values []field.Element) *Registers {
	r := &Registers{
		values: make([]field.Element, len(values)),
		init:   bitset.New(uint(len(values))),
	}
	copy(r.values, values)
	for i := range values {
		r.init.Set(uint(i))
	}
	return r
}

// Get returns the value held in register i.
func (r *Registers) Get(i Register) (field.Element, error) {
	if uint32(i) >= maxRegisters {
		return field.Element{}, fmt.Errorf("register %d past maximum", i)
	}
	if int(i) >= len(r.values) || !r.init.Test(uint(i)) {
		return field.Element{}, fmt.Errorf("read of uninitialized register %d", i)
	}
	return r.values[i], nil
}

// Set writes value into register i, growing the file as needed.
func (r *Registers) Set(i Register, value field.Element) error {
	if uint32(i) >= maxRegisters {
		return fmt.Errorf("register %d past maximum", i)
	}
	if int(i) >= len(r.values) {
		grown := make([]field.Element, int(i)+1)
		copy(grown, r.values)
		r.values = grown
	}
	r.values[i] = value
	r.init.Set(uint(i))
	return nil
}

// Values returns the underlying register values. Uninitialized slots read as
// zero; callers that care use Get.
func (r *Registers) Values() []field.Element {
	return r.values
}
