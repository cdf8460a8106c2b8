package pwg

import (
	"fmt"

	"github.com/consensys/acvm/acir"
	"github.com/consensys/acvm/field"
)

// blockSolver holds the live contents of one circuit memory block. Writes
// mutate the block in place; reads assign the cell's current content to the
// opcode's output witness. Opcodes touching a block must execute in
// declaration order for reads to see well-defined content; pending tracks
// the block's memory ops still to run, so a later op cannot overtake an
// earlier one whose operands are not yet known.
type blockSolver struct {
	cells   []field.Element
	pending []int
}

func newBlockSolver(init acir.MemoryInit, ops []int, m acir.WitnessMap) (*blockSolver, resolution, error) {
	if !m.IsSolved(init.Init...) {
		return nil, stalled, nil
	}
	cells := make([]field.Element, len(init.Init))
	for i, w := range init.Init {
		cells[i], _ = m.Get(w)
	}
	return &blockSolver{cells: cells, pending: ops}, resolved, nil
}

// upNext reports whether the op at the given opcode index is the block's
// next unexecuted memory op.
func (b *blockSolver) upNext(index int) bool {
	return len(b.pending) > 0 && b.pending[0] == index
}

func (b *blockSolver) solveMemoryOp(index int, op acir.MemoryOp, m acir.WitnessMap) (resolution, error) {
	operation, ok := evaluateToConst(&op.Operation, m)
	if !ok {
		return stalled, nil
	}
	idxVal, ok := evaluateToConst(&op.Index, m)
	if !ok {
		return stalled, nil
	}
	idx, ok := field.ToUint64(&idxVal)
	if !ok || idx >= uint64(len(b.cells)) {
		return resolved, &UnsatisfiedConstraintError{
			OpcodeIndex: index,
			Opcode:      fmt.Sprintf("memory op, index %s out of bounds", idxVal.String()),
		}
	}

	if operation.IsZero() {
		// Read: the value expression must be a bare witness to assign.
		w, ok := op.Value.ToWitness()
		if !ok {
			return resolved, &UnsatisfiedConstraintError{
				OpcodeIndex: index,
				Opcode:      "memory read into a non-witness value",
			}
		}
		return resolved, insertValue(index, "memory read", w, b.cells[idx], m)
	}

	if !operation.IsOne() {
		return resolved, &UnsatisfiedConstraintError{
			OpcodeIndex: index,
			Opcode:      fmt.Sprintf("memory op with operation %s", operation.String()),
		}
	}

	value, ok := evaluateToConst(&op.Value, m)
	if !ok {
		return stalled, nil
	}
	b.cells[idx] = value
	return resolved, nil
}
