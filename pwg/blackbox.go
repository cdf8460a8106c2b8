package pwg

import (
	"fmt"

	"github.com/consensys/acvm/acir"
	"github.com/consensys/acvm/blackbox"
	"github.com/consensys/acvm/field"
)

// BlackBoxWaitInfo describes a deferred black-box call the session is
// waiting on. Inputs are fully determined field elements; the caller must
// answer with exactly NumOutputs values through ResolveBlackBox.
type BlackBoxWaitInfo struct {
	Function   acir.BlackBoxFunc
	Inputs     []field.Element
	NumOutputs int
}

// solveBlackBox handles one black-box call. Bitwise AND, XOR and range
// checks are computed here; everything else goes through the registry,
// either to a local implementation or to the caller via a blocked wait.
func solveBlackBox(index int, op acir.BlackBoxCall, reg *blackbox.Registry, m acir.WitnessMap) (resolution, *BlackBoxWaitInfo, error) {
	switch op.Function {
	case acir.AND, acir.XOR:
		res, err := solveLogic(index, op, m)
		return res, nil, err
	case acir.Range:
		res, err := solveRange(index, op, m)
		return res, nil, err
	}

	inputs := make([]field.Element, len(op.Inputs))
	for i, in := range op.Inputs {
		v, ok := m.Get(in.Witness)
		if !ok {
			return stalled, nil, nil
		}
		inputs[i] = v
	}

	if f, ok := reg.Lookup(op.Function); ok {
		outputs := make([]field.Element, len(op.Outputs))
		if err := f(inputs, outputs); err != nil {
			return resolved, nil, &BlackBoxError{OpcodeIndex: index, Function: op.Function, Err: err}
		}
		for i, w := range op.Outputs {
			if err := insertValue(index, op.Function.String(), w, outputs[i], m); err != nil {
				return resolved, nil, err
			}
		}
		return resolved, nil, nil
	}

	if reg.IsDeferred(op.Function) {
		return blocked, &BlackBoxWaitInfo{
			Function:   op.Function,
			Inputs:     inputs,
			NumOutputs: len(op.Outputs),
		}, nil
	}

	return resolved, nil, &UnsupportedBlackBoxError{OpcodeIndex: index, Function: op.Function}
}

func solveLogic(index int, op acir.BlackBoxCall, m acir.WitnessMap) (resolution, error) {
	if len(op.Inputs) != 2 || len(op.Outputs) != 1 {
		return resolved, fmt.Errorf("opcode %d: %s expects 2 inputs and 1 output", index, op.Function)
	}
	lhs, ok := m.Get(op.Inputs[0].Witness)
	if !ok {
		return stalled, nil
	}
	rhs, ok := m.Get(op.Inputs[1].Witness)
	if !ok {
		return stalled, nil
	}

	bits := op.Inputs[0].NumBits
	var out field.Element
	if op.Function == acir.AND {
		out = field.And(&lhs, &rhs, bits)
	} else {
		out = field.Xor(&lhs, &rhs, bits)
	}
	return resolved, insertValue(index, op.Function.String(), op.Outputs[0], out, m)
}

func solveRange(index int, op acir.BlackBoxCall, m acir.WitnessMap) (resolution, error) {
	if len(op.Inputs) != 1 {
		return resolved, fmt.Errorf("opcode %d: RANGE expects 1 input", index)
	}
	in := op.Inputs[0]
	v, ok := m.Get(in.Witness)
	if !ok {
		return stalled, nil
	}
	if uint32(field.BitLen(&v)) > in.NumBits {
		return resolved, &UnsatisfiedConstraintError{
			OpcodeIndex: index,
			Opcode:      fmt.Sprintf("range check, %s exceeds %d bits", in.Witness, in.NumBits),
		}
	}
	return resolved, nil
}
