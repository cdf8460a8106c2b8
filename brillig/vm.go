package brillig

import (
	"fmt"
	"strings"

	"github.com/consensys/acvm/field"
	"github.com/consensys/acvm/internal/debug"
)

// Status of a VM run.
type Status uint8

const (
	// StatusInProgress means the VM has instructions left to process.
	StatusInProgress Status = iota
	// StatusFinished means the program ran to completion.
	StatusFinished
	// StatusFailure means the program hit an invalid state or a trap; Err
	// carries the diagnostic.
	StatusFailure
	// StatusForeignCallWait means execution is suspended on a foreign call;
	// ForeignCallWait carries the request and ResolveForeignCall resumes.
	StatusForeignCallWait
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case StatusFinished:
		return "finished"
	case StatusFailure:
		return "failure"
	case StatusForeignCallWait:
		return "foreign call wait"
	default:
		return "unknown"
	}
}

// ExecutionError is a fatal interpreter failure. The call stack holds the
// return addresses pending at the point of failure, then the failing program
// counter, for diagnostics.
type ExecutionError struct {
	Message   string
	CallStack []uint32
}

func (e *ExecutionError) Error() string {
	if len(e.CallStack) == 0 {
		return e.Message
	}
	locations := make([]string, len(e.CallStack))
	for i, l := range e.CallStack {
		locations[i] = fmt.Sprintf("%d", l)
	}
	return fmt.Sprintf("%s (call stack: %s)", e.Message, strings.Join(locations, " -> "))
}

// VM is one mutable run of a Brillig program: a program counter, a register
// file, a linear memory and a stack of pending call sites. A VM is owned by
// a single solving session; it survives foreign-call suspensions until
// resolved or discarded.
type VM struct {
	registers *Registers
	memory    *Memory
	bytecode  []Instruction

	pc        int
	callStack []uint32

	status  Status
	err     *ExecutionError
	pending *ForeignCallWaitInfo
	// outputs of the suspended foreign call, kept to place the result
	pendingOutputs []CallOperand
}

// New returns a VM with registers and memory preloaded, ready to process
// bytecode from the first instruction.
func New(registers, memory []field.Element, bytecode []Instruction) *VM {
	vm := &VM{
		registers: NewRegisters(registers),
		memory:    NewMemory(memory),
		bytecode:  bytecode,
		status:    StatusInProgress,
	}
	if len(bytecode) == 0 {
		vm.status = StatusFinished
	}
	return vm
}

// Status returns the current status.
func (vm *VM) Status() Status {
	return vm.status
}

// Err returns the failure diagnostic, if the VM failed.
func (vm *VM) Err() *ExecutionError {
	return vm.err
}

// ForeignCallWait returns the pending foreign-call request, if suspended.
func (vm *VM) ForeignCallWait() *ForeignCallWaitInfo {
	return vm.pending
}

// Registers returns the register file.
func (vm *VM) Registers() *Registers {
	return vm.registers
}

// Memory returns the linear memory.
func (vm *VM) Memory() *Memory {
	return vm.memory
}

// Process runs the program until it finishes, fails, or suspends on a
// foreign call.
func (vm *VM) Process() Status {
	for vm.status == StatusInProgress {
		vm.step()
	}
	return vm.status
}

// ResolveForeignCall supplies the outputs of the pending foreign call and
// resumes execution state. The result must match the shapes declared by the
// suspended call instruction; a mismatch is a caller error and leaves the VM
// suspended.
func (vm *VM) ResolveForeignCall(result ForeignCallResult) error {
	if vm.status != StatusForeignCallWait {
		return fmt.Errorf("no foreign call pending (status %s)", vm.status)
	}
	debug.Assert(vm.pending != nil, "suspended VM must hold its pending call")
	if len(result.Values) != len(vm.pendingOutputs) {
		return fmt.Errorf("foreign call %q expects %d output values, got %d",
			vm.pending.Function, len(vm.pendingOutputs), len(result.Values))
	}
	for i, operand := range vm.pendingOutputs {
		value := result.Values[i]
		if operand.IsArray != value.IsArray {
			return fmt.Errorf("foreign call %q output %d: shape mismatch", vm.pending.Function, i)
		}
		if !operand.IsArray {
			if err := vm.registers.Set(operand.Register, value.Value); err != nil {
				return err
			}
			continue
		}
		if len(value.Array) != int(operand.Size) {
			return fmt.Errorf("foreign call %q output %d: expected %d values, got %d",
				vm.pending.Function, i, operand.Size, len(value.Array))
		}
		base, err := vm.intRegister(operand.Register)
		if err != nil {
			return err
		}
		for j, v := range value.Array {
			if err := vm.memory.Store(base+uint64(j), v); err != nil {
				return err
			}
		}
	}
	vm.pending = nil
	vm.pendingOutputs = nil
	vm.pc++
	vm.status = StatusInProgress
	if vm.pc >= len(vm.bytecode) {
		vm.status = StatusFinished
	}
	return nil
}

// step processes a single instruction.
func (vm *VM) step() {
	// advance and jump leave the in-progress status only with a valid pc.
	debug.Assert(vm.pc < len(vm.bytecode), "program counter out of range")
	instr := &vm.bytecode[vm.pc]

	switch instr.Op {
	case OpBinaryField:
		lhs, rhs, err := vm.operands(instr.Lhs, instr.Rhs)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		res, err := evaluateBinaryFieldOp(instr.FieldOp, lhs, rhs)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		vm.setAndAdvance(instr.Destination, res)

	case OpBinaryInt:
		lhs, err := vm.intRegister(instr.Lhs)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		rhs, err := vm.intRegister(instr.Rhs)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		res, err := evaluateBinaryIntOp(instr.IntOp, lhs, rhs, instr.BitSize)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		vm.setAndAdvance(instr.Destination, field.NewElement(res))

	case OpJump:
		vm.jump(instr.Location)

	case OpJumpIf:
		cond, err := vm.registers.Get(instr.Condition)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		if !cond.IsZero() {
			vm.jump(instr.Location)
		} else {
			vm.advance()
		}

	case OpJumpIfNot:
		cond, err := vm.registers.Get(instr.Condition)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		if cond.IsZero() {
			vm.jump(instr.Location)
		} else {
			vm.advance()
		}

	case OpCall:
		vm.callStack = append(vm.callStack, uint32(vm.pc)+1)
		vm.jump(instr.Location)

	case OpReturn:
		if len(vm.callStack) == 0 {
			vm.fail("return with empty call stack")
			return
		}
		ret := vm.callStack[len(vm.callStack)-1]
		vm.callStack = vm.callStack[:len(vm.callStack)-1]
		vm.jump(ret)

	case OpConst:
		vm.setAndAdvance(instr.Destination, instr.Value)

	case OpMov:
		v, err := vm.registers.Get(instr.Source)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		vm.setAndAdvance(instr.Destination, v)

	case OpLoad:
		addr, err := vm.intRegister(instr.Pointer)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		v, err := vm.memory.Load(addr)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		vm.setAndAdvance(instr.Destination, v)

	case OpStore:
		addr, err := vm.intRegister(instr.Pointer)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		v, err := vm.registers.Get(instr.Source)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		if err := vm.memory.Store(addr, v); err != nil {
			vm.fail(err.Error())
			return
		}
		vm.advance()

	case OpForeignCall:
		inputs, err := vm.evaluateOperands(instr.Inputs)
		if err != nil {
			vm.fail(err.Error())
			return
		}
		vm.pending = &ForeignCallWaitInfo{Function: instr.Function, Inputs: inputs}
		vm.pendingOutputs = instr.Outputs
		vm.status = StatusForeignCallWait

	case OpTrap:
		vm.fail("explicit trap hit")

	case OpStop:
		vm.status = StatusFinished

	default:
		vm.fail(fmt.Sprintf("unknown opcode %d", instr.Op))
	}
}

func (vm *VM) operands(lhs, rhs Register) (field.Element, field.Element, error) {
	l, err := vm.registers.Get(lhs)
	if err != nil {
		return field.Element{}, field.Element{}, err
	}
	r, err := vm.registers.Get(rhs)
	if err != nil {
		return field.Element{}, field.Element{}, err
	}
	return l, r, nil
}

// intRegister reads register r as an unsigned integer.
func (vm *VM) intRegister(r Register) (uint64, error) {
	v, err := vm.registers.Get(r)
	if err != nil {
		return 0, err
	}
	u, ok := field.ToUint64(&v)
	if !ok {
		return 0, fmt.Errorf("register %d does not hold an integer value", r)
	}
	return u, nil
}

// evaluateOperands resolves foreign-call input operands to concrete values.
func (vm *VM) evaluateOperands(operands []CallOperand) ([]ForeignCallParam, error) {
	params := make([]ForeignCallParam, len(operands))
	for i, operand := range operands {
		if !operand.IsArray {
			v, err := vm.registers.Get(operand.Register)
			if err != nil {
				return nil, err
			}
			params[i] = SingleParam(v)
			continue
		}
		base, err := vm.intRegister(operand.Register)
		if err != nil {
			return nil, err
		}
		values := make([]field.Element, operand.Size)
		for j := range values {
			if values[j], err = vm.memory.Load(base + uint64(j)); err != nil {
				return nil, err
			}
		}
		params[i] = ForeignCallParam{Array: values, IsArray: true}
	}
	return params, nil
}

func (vm *VM) setAndAdvance(dst Register, v field.Element) {
	if err := vm.registers.Set(dst, v); err != nil {
		vm.fail(err.Error())
		return
	}
	vm.advance()
}

func (vm *VM) advance() {
	vm.pc++
	if vm.pc >= len(vm.bytecode) {
		vm.status = StatusFinished
	}
}

func (vm *VM) jump(location uint32) {
	if int(location) >= len(vm.bytecode) {
		vm.fail(fmt.Sprintf("jump target %d out of bounds (%d instructions)", location, len(vm.bytecode)))
		return
	}
	vm.pc = int(location)
}

func (vm *VM) fail(message string) {
	stack := make([]uint32, 0, len(vm.callStack)+1)
	stack = append(stack, vm.callStack...)
	stack = append(stack, uint32(vm.pc))
	vm.err = &ExecutionError{Message: message, CallStack: stack}
	vm.status = StatusFailure
}
