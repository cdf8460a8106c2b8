package pwg

import (
	"fmt"

	"github.com/consensys/acvm/acir"
	"github.com/consensys/acvm/brillig"
	"github.com/consensys/acvm/field"
)

// solveBrillig runs the embedded bytecode of one BrilligCall. A suspended VM
// is kept in vms under the opcode index so a foreign-call resume picks up
// exactly where execution stopped.
func solveBrillig(index int, op acir.BrilligCall, vms map[int]*brillig.VM, m acir.WitnessMap) (resolution, *brillig.ForeignCallWaitInfo, error) {
	vm, running := vms[index]
	if !running {
		if op.Predicate != nil {
			pred, ok := evaluateToConst(op.Predicate, m)
			if !ok {
				return stalled, nil, nil
			}
			if pred.IsZero() {
				return resolved, nil, zeroBrilligOutputs(index, op, m)
			}
		}

		var ok bool
		if vm, ok = newBrilligVM(op, m); !ok {
			return stalled, nil, nil
		}
	}

	switch vm.Process() {
	case brillig.StatusFinished:
		delete(vms, index)
		return resolved, nil, writeBrilligOutputs(index, op, vm, m)
	case brillig.StatusForeignCallWait:
		vms[index] = vm
		return blocked, vm.ForeignCallWait(), nil
	default:
		delete(vms, index)
		e := vm.Err()
		return resolved, nil, &BrilligError{OpcodeIndex: index, Message: e.Message, CallStack: e.CallStack}
	}
}

// newBrilligVM evaluates the call's input bindings. Input i lands in
// register i; array inputs are laid out in memory with the register holding
// the base address. Returns false while any input is still unknown.
func newBrilligVM(op acir.BrilligCall, m acir.WitnessMap) (*brillig.VM, bool) {
	registers := make([]field.Element, len(op.Inputs))
	var memory []field.Element

	for i, in := range op.Inputs {
		if in.Single != nil {
			v, ok := evaluateToConst(in.Single, m)
			if !ok {
				return nil, false
			}
			registers[i] = v
			continue
		}
		base := len(memory)
		for j := range in.Array {
			v, ok := evaluateToConst(&in.Array[j], m)
			if !ok {
				return nil, false
			}
			memory = append(memory, v)
		}
		registers[i] = field.NewElement(uint64(base))
	}

	return brillig.New(registers, memory, op.Bytecode), true
}

// writeBrilligOutputs maps the finished VM's state back onto witnesses.
// Output j reads register j; an array output treats the register as a base
// address and reads one memory cell per declared witness.
func writeBrilligOutputs(index int, op acir.BrilligCall, vm *brillig.VM, m acir.WitnessMap) error {
	for j, out := range op.Outputs {
		v, err := vm.Registers().Get(brillig.Register(j))
		if err != nil {
			return &BrilligError{OpcodeIndex: index, Message: fmt.Sprintf("output %d: %v", j, err)}
		}
		if out.Simple != nil {
			if err := insertValue(index, "unconstrained call", *out.Simple, v, m); err != nil {
				return err
			}
			continue
		}
		base, ok := field.ToUint64(&v)
		if !ok {
			return &BrilligError{OpcodeIndex: index, Message: fmt.Sprintf("output %d: pointer out of range", j)}
		}
		for k, w := range out.Array {
			cell, err := vm.Memory().Load(base + uint64(k))
			if err != nil {
				return &BrilligError{OpcodeIndex: index, Message: fmt.Sprintf("output %d: %v", j, err)}
			}
			if err := insertValue(index, "unconstrained call", w, cell, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// zeroBrilligOutputs satisfies a call skipped by its predicate.
func zeroBrilligOutputs(index int, op acir.BrilligCall, m acir.WitnessMap) error {
	for _, out := range op.Outputs {
		if out.Simple != nil {
			if err := insertValue(index, "unconstrained call", *out.Simple, field.Zero(), m); err != nil {
				return err
			}
			continue
		}
		for _, w := range out.Array {
			if err := insertValue(index, "unconstrained call", w, field.Zero(), m); err != nil {
				return err
			}
		}
	}
	return nil
}
