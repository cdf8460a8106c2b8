package pwg

import (
	"fmt"

	"github.com/consensys/acvm/acir"
)

// UnsatisfiedConstraintError reports an opcode whose constraint cannot hold
// under the current assignment. Cause is set when the contradiction surfaced
// as a conflicting witness insertion.
type UnsatisfiedConstraintError struct {
	OpcodeIndex int
	Opcode      string
	Cause       error
}

func (e *UnsatisfiedConstraintError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("opcode %d (%s) unsatisfied: %v", e.OpcodeIndex, e.Opcode, e.Cause)
	}
	return fmt.Sprintf("opcode %d (%s) unsatisfied", e.OpcodeIndex, e.Opcode)
}

func (e *UnsatisfiedConstraintError) Unwrap() error { return e.Cause }

// DivideByZeroError reports a division by zero while deriving a witness.
type DivideByZeroError struct {
	OpcodeIndex int
}

func (e *DivideByZeroError) Error() string {
	return fmt.Sprintf("opcode %d: division by zero", e.OpcodeIndex)
}

// UnsupportedBlackBoxError reports a black-box function with neither a local
// implementation nor a deferred registration.
type UnsupportedBlackBoxError struct {
	OpcodeIndex int
	Function    acir.BlackBoxFunc
}

func (e *UnsupportedBlackBoxError) Error() string {
	return fmt.Sprintf("opcode %d: unsupported black-box function %s", e.OpcodeIndex, e.Function)
}

// BlackBoxError wraps a failure reported by a black-box implementation.
type BlackBoxError struct {
	OpcodeIndex int
	Function    acir.BlackBoxFunc
	Err         error
}

func (e *BlackBoxError) Error() string {
	return fmt.Sprintf("opcode %d: black-box function %s failed: %v", e.OpcodeIndex, e.Function, e.Err)
}

func (e *BlackBoxError) Unwrap() error { return e.Err }

// BrilligError reports a failed Brillig execution. CallStack holds the
// program locations active at the failure, outermost first, when known.
type BrilligError struct {
	OpcodeIndex int
	Message     string
	CallStack   []uint32
}

func (e *BrilligError) Error() string {
	if len(e.CallStack) > 0 {
		return fmt.Sprintf("opcode %d: unconstrained execution failed at %v: %s", e.OpcodeIndex, e.CallStack, e.Message)
	}
	return fmt.Sprintf("opcode %d: unconstrained execution failed: %s", e.OpcodeIndex, e.Message)
}

// StalledError reports a deadlock: no opcode made progress, nothing is
// waiting on the caller, and the named opcode remains unsolved.
type StalledError struct {
	OpcodeIndex int
	Opcode      string
}

func (e *StalledError) Error() string {
	return fmt.Sprintf("cannot make progress: opcode %d (%s) has unsolved inputs", e.OpcodeIndex, e.Opcode)
}
