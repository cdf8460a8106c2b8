package acir

import (
	"fmt"
	"strings"
)

// PublicInputs is a set of witnesses visible at the circuit boundary.
type PublicInputs []Witness

// Contains reports whether w is in the set.
func (p PublicInputs) Contains(w Witness) bool {
	for _, x := range p {
		if x == w {
			return true
		}
	}
	return false
}

// Circuit is an ordered sequence of opcodes together with the declared
// witness count and the witnesses visible at the boundary. It is immutable;
// a solving session consumes it whole.
type Circuit struct {
	// CurrentWitnessIndex is the highest witness index used by the circuit.
	CurrentWitnessIndex uint32

	Opcodes []Opcode

	// PublicParameters are the circuit's public inputs, ReturnValues its
	// public outputs.
	PublicParameters PublicInputs
	ReturnValues     PublicInputs
}

func (c *Circuit) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "current witness index : %d\n", c.CurrentWitnessIndex)
	fmt.Fprintf(&sb, "public parameters : %v\n", c.PublicParameters)
	fmt.Fprintf(&sb, "return values : %v\n", c.ReturnValues)
	for i, op := range c.Opcodes {
		fmt.Fprintf(&sb, "%d: %s\n", i, op.String())
	}
	return sb.String()
}
