package acir

import (
	"fmt"
	"strings"

	"github.com/consensys/acvm/brillig"
)

// Opcode is one instruction of a compiled circuit. The set of kinds is
// closed: AssertZero, BlackBoxCall, the directives, MemoryInit, MemoryOp and
// BrilligCall. Solvers dispatch with an exhaustive type switch.
type Opcode interface {
	fmt.Stringer
	isOpcode()
}

// AssertZero constrains an expression to evaluate to zero.
type AssertZero struct {
	Expr Expression
}

func (AssertZero) isOpcode() {}

func (o AssertZero) String() string {
	return fmt.Sprintf("ASSERT %s == 0", o.Expr.String())
}

// BlackBoxCall invokes a named cryptographic black-box function on concrete
// input witnesses, assigning its results to the output witnesses.
type BlackBoxCall struct {
	Function BlackBoxFunc
	Inputs   []FunctionInput
	Outputs  []Witness
}

func (BlackBoxCall) isOpcode() {}

func (o BlackBoxCall) String() string {
	return fmt.Sprintf("BLACKBOX %s (%d inputs, %d outputs)",
		o.Function, len(o.Inputs), len(o.Outputs))
}

// DirectiveInvert assigns Result = X^-1 (and 0 for X = 0) without
// constraining the relation.
type DirectiveInvert struct {
	X      Witness
	Result Witness
}

func (DirectiveInvert) isOpcode() {}

func (o DirectiveInvert) String() string {
	return fmt.Sprintf("DIR INVERT %s -> %s", o.X, o.Result)
}

// DirectiveQuotient assigns Q, R the euclidean quotient and remainder of
// A / B over the integers. A zero predicate zeroes both outputs.
type DirectiveQuotient struct {
	A         Expression
	B         Expression
	Q         Witness
	R         Witness
	Predicate *Expression
}

func (DirectiveQuotient) isOpcode() {}

func (o DirectiveQuotient) String() string {
	return fmt.Sprintf("DIR QUOTIENT (%s) / (%s) -> %s, %s", o.A.String(), o.B.String(), o.Q, o.R)
}

// DirectiveToLeRadix decomposes A into little-endian digits in the given
// radix, one digit per output witness.
type DirectiveToLeRadix struct {
	A     Expression
	B     []Witness
	Radix uint32
}

func (DirectiveToLeRadix) isOpcode() {}

func (o DirectiveToLeRadix) String() string {
	return fmt.Sprintf("DIR TO_LE_RADIX (%s) radix %d -> %d digits", o.A.String(), o.Radix, len(o.B))
}

// BlockID names an addressable memory block within a circuit.
type BlockID uint32

// MemoryInit initializes a memory block from a list of witnesses.
type MemoryInit struct {
	Block BlockID
	Init  []Witness
}

func (MemoryInit) isOpcode() {}

func (o MemoryInit) String() string {
	return fmt.Sprintf("MEM INIT block %d, %d cells", o.Block, len(o.Init))
}

// MemoryOp reads or writes one cell of a memory block. Operation evaluates to
// 0 for a read and 1 for a write. For reads, Value must be a single witness
// receiving the cell's content; for writes it is the expression stored.
type MemoryOp struct {
	Block     BlockID
	Operation Expression
	Index     Expression
	Value     Expression
}

func (MemoryOp) isOpcode() {}

func (o MemoryOp) String() string {
	return fmt.Sprintf("MEM OP block %d [%s]", o.Block, o.Index.String())
}

// BrilligInput is an input binding of a Brillig call: either a single
// expression bound to a register, or an array of expressions laid out in the
// interpreter's memory. Exactly one of the two fields is set.
type BrilligInput struct {
	Single *Expression
	Array  []Expression
}

// SingleInput binds e to an input register.
func SingleInput(e Expression) BrilligInput {
	return BrilligInput{Single: &e}
}

// ArrayInput lays the expressions out in interpreter memory and binds the
// base pointer to an input register.
func ArrayInput(es ...Expression) BrilligInput {
	return BrilligInput{Array: es}
}

// BrilligOutput is an output binding of a Brillig call: a single witness
// receiving a register, or witnesses receiving an array addressed by one.
// Exactly one of the two fields is set.
type BrilligOutput struct {
	Simple *Witness
	Array  []Witness
}

// SimpleOutput binds an output register to w.
func SimpleOutput(w Witness) BrilligOutput {
	return BrilligOutput{Simple: &w}
}

// ArrayOutput binds a memory region, addressed by an output register, to ws.
func ArrayOutput(ws ...Witness) BrilligOutput {
	return BrilligOutput{Array: ws}
}

// BrilligCall executes an embedded bytecode program. Input expressions are
// evaluated into the interpreter's registers and memory; on completion the
// declared outputs are written back to witnesses. A zero predicate skips
// execution and zeroes all outputs.
type BrilligCall struct {
	Inputs    []BrilligInput
	Outputs   []BrilligOutput
	Bytecode  []brillig.Instruction
	Predicate *Expression
}

func (BrilligCall) isOpcode() {}

func (o BrilligCall) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "BRILLIG %d instructions, %d inputs, %d outputs",
		len(o.Bytecode), len(o.Inputs), len(o.Outputs))
	return sb.String()
}
