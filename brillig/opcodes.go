// Package brillig implements the register/memory bytecode interpreter
// embedded in a circuit. A program runs to completion, to a failure, or to a
// foreign-call suspension that the caller resolves before resuming.
package brillig

import (
	"github.com/consensys/acvm/field"
)

// Register addresses a slot in the interpreter's register file.
type Register uint32

// Op enumerates the instruction kinds. The set is closed.
type Op uint8

const (
	OpBinaryField Op = iota
	OpBinaryInt
	OpJump
	OpJumpIf
	OpJumpIfNot
	OpCall
	OpReturn
	OpConst
	OpMov
	OpLoad
	OpStore
	OpForeignCall
	OpTrap
	OpStop
)

func (op Op) String() string {
	switch op {
	case OpBinaryField:
		return "binary_field_op"
	case OpBinaryInt:
		return "binary_int_op"
	case OpJump:
		return "jmp"
	case OpJumpIf:
		return "jmp_if"
	case OpJumpIfNot:
		return "jmp_if_not"
	case OpCall:
		return "call"
	case OpReturn:
		return "return"
	case OpConst:
		return "const"
	case OpMov:
		return "mov"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpForeignCall:
		return "foreign_call"
	case OpTrap:
		return "trap"
	case OpStop:
		return "stop"
	default:
		return "unknown"
	}
}

// BinaryFieldOp is a binary operation between two field elements.
type BinaryFieldOp uint8

const (
	FieldAdd BinaryFieldOp = iota
	FieldSub
	FieldMul
	FieldDiv
	FieldEquals
)

// BinaryIntOp is a binary operation between two integers of a declared bit
// size. Results are reduced modulo 2^bitSize.
type BinaryIntOp uint8

const (
	IntAdd BinaryIntOp = iota
	IntSub
	IntMul
	IntSignedDiv
	IntUnsignedDiv
	IntEquals
	IntLessThan
	IntLessThanEquals
	IntAnd
	IntOr
	IntXor
	IntShl
	IntShr
)

// CallOperand addresses a foreign-call input or output: either a single
// register, or a heap array of Size cells whose base address is held in
// Register.
type CallOperand struct {
	Register Register
	Size     uint32
	IsArray  bool
}

// RegisterOperand addresses the value held in r.
func RegisterOperand(r Register) CallOperand {
	return CallOperand{Register: r}
}

// HeapArrayOperand addresses size memory cells starting at the address held
// in pointer.
func HeapArrayOperand(pointer Register, size uint32) CallOperand {
	return CallOperand{Register: pointer, Size: size, IsArray: true}
}

// Instruction is one bytecode word. Op selects the kind; the remaining
// fields are its operands, unused ones left zero.
type Instruction struct {
	Op Op

	FieldOp BinaryFieldOp
	IntOp   BinaryIntOp
	BitSize uint32

	Destination Register
	Lhs         Register
	Rhs         Register
	Condition   Register
	Source      Register
	Pointer     Register

	// Location is a Jump/Call target; only static targets are supported.
	Location uint32

	Value field.Element

	Function string
	Inputs   []CallOperand
	Outputs  []CallOperand
}

// BinaryField builds a field operation: destination = lhs op rhs.
func BinaryField(destination Register, op BinaryFieldOp, lhs, rhs Register) Instruction {
	return Instruction{Op: OpBinaryField, Destination: destination, FieldOp: op, Lhs: lhs, Rhs: rhs}
}

// BinaryInt builds an integer operation over bitSize-bit values.
func BinaryInt(destination Register, op BinaryIntOp, bitSize uint32, lhs, rhs Register) Instruction {
	return Instruction{Op: OpBinaryInt, Destination: destination, IntOp: op, BitSize: bitSize, Lhs: lhs, Rhs: rhs}
}

// Jump builds an unconditional jump to location.
func Jump(location uint32) Instruction {
	return Instruction{Op: OpJump, Location: location}
}

// JumpIf jumps to location if condition holds a non-zero value.
func JumpIf(condition Register, location uint32) Instruction {
	return Instruction{Op: OpJumpIf, Condition: condition, Location: location}
}

// JumpIfNot jumps to location if condition holds zero.
func JumpIfNot(condition Register, location uint32) Instruction {
	return Instruction{Op: OpJumpIfNot, Condition: condition, Location: location}
}

// Call jumps to location, pushing the return address on the call stack.
func Call(location uint32) Instruction {
	return Instruction{Op: OpCall, Location: location}
}

// Return pops the call stack and resumes at the saved address.
func Return() Instruction {
	return Instruction{Op: OpReturn}
}

// Const loads an immediate value into destination.
func Const(destination Register, value field.Element) Instruction {
	return Instruction{Op: OpConst, Destination: destination, Value: value}
}

// Mov copies source into destination.
func Mov(destination, source Register) Instruction {
	return Instruction{Op: OpMov, Destination: destination, Source: source}
}

// Load reads the memory cell addressed by pointer into destination.
func Load(destination, pointer Register) Instruction {
	return Instruction{Op: OpLoad, Destination: destination, Pointer: pointer}
}

// Store writes source into the memory cell addressed by pointer, growing
// memory zero-filled as needed.
func Store(pointer, source Register) Instruction {
	return Instruction{Op: OpStore, Pointer: pointer, Source: source}
}

// ForeignCall requests a named host computation on the given operands.
func ForeignCall(function string, outputs, inputs []CallOperand) Instruction {
	return Instruction{Op: OpForeignCall, Function: function, Outputs: outputs, Inputs: inputs}
}

// Trap marks execution failure.
func Trap() Instruction {
	return Instruction{Op: OpTrap}
}

// Stop terminates execution successfully.
func Stop() Instruction {
	return Instruction{Op: OpStop}
}
