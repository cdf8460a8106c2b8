// Package pwg derives the missing witnesses of a compiled circuit from a
// partial assignment (partial witness generation).
//
// A session owns a monotone witness store and sweeps the opcode list in
// declaration order. Every sweep retries the opcodes still unsolved; a sweep
// that assigns a witness or discharges an opcode makes progress and triggers
// another. Solving ends fully solved, failed, or suspended on the single
// next request the caller must answer: a deferred black-box call or a
// Brillig foreign call. Resolving the request resumes sweeping.
package pwg

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"

	"github.com/consensys/acvm/acir"
	"github.com/consensys/acvm/brillig"
	"github.com/consensys/acvm/field"
	"github.com/consensys/acvm/internal/debug"
)

// Status of a solving session.
type Status uint8

const (
	// StatusInProgress means Solve can run (again).
	StatusInProgress Status = iota
	// StatusSolved means every opcode is discharged; WitnessMap holds the
	// full assignment.
	StatusSolved
	// StatusRequiresBlackBox means the session waits on ResolveBlackBox.
	StatusRequiresBlackBox
	// StatusRequiresForeignCall means the session waits on
	// ResolveForeignCall.
	StatusRequiresForeignCall
	// StatusFailed is terminal; Err returns the cause.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case StatusSolved:
		return "solved"
	case StatusRequiresBlackBox:
		return "requires black box"
	case StatusRequiresForeignCall:
		return "requires foreign call"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ACVM is one solving session over one circuit. Not safe for concurrent
// use; it suspends cooperatively instead.
type ACVM struct {
	cfg Config
	log zerolog.Logger

	opcodes []acir.Opcode
	witness acir.WitnessMap
	solved  *bitset.BitSet
	blocks  map[acir.BlockID]*blockSolver
	// blockOps lists, per block, the opcode indices of its memory ops in
	// declaration order.
	blockOps map[acir.BlockID][]int
	vms      map[int]*brillig.VM

	status Status
	err    error

	pendingIndex    int
	pendingBlackBox *BlackBoxWaitInfo
	pendingForeign  *brillig.ForeignCallWaitInfo
}

// New builds a session for circuit seeded with the initial assignment. The
// assignment is cloned; the caller's map is never written.
func New(circuit *acir.Circuit, initial acir.WitnessMap, opts ...Option) (*ACVM, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	blockOps := make(map[acir.BlockID][]int)
	for i, op := range circuit.Opcodes {
		if o, ok := op.(acir.MemoryOp); ok {
			blockOps[o.Block] = append(blockOps[o.Block], i)
		}
	}
	return &ACVM{
		cfg:          cfg,
		log:          cfg.Logger,
		opcodes:      circuit.Opcodes,
		witness:      initial.Clone(),
		solved:       bitset.New(uint(len(circuit.Opcodes))),
		blocks:       make(map[acir.BlockID]*blockSolver),
		blockOps:     blockOps,
		vms:          make(map[int]*brillig.VM),
		status:       StatusInProgress,
		pendingIndex: -1,
	}, nil
}

// Solve is the convenience entry point for circuits that resolve without
// caller involvement. A session that suspends on a black-box or foreign
// call is reported as an error; drive those through New and ResolveBlackBox
// or ResolveForeignCall instead.
func Solve(circuit *acir.Circuit, initial acir.WitnessMap, opts ...Option) (acir.WitnessMap, error) {
	a, err := New(circuit, initial, opts...)
	if err != nil {
		return nil, err
	}
	status, err := a.Run()
	if err != nil {
		return nil, err
	}
	if status != StatusSolved {
		return nil, fmt.Errorf("circuit suspended (%s); use a session to answer its requests", status)
	}
	return a.WitnessMap(), nil
}

// Run sweeps until the session solves, fails, or suspends. Calling Run on a
// suspended session returns the current status without sweeping; terminal
// statuses are sticky.
func (a *ACVM) Run() (Status, error) {
	switch a.status {
	case StatusSolved, StatusRequiresBlackBox, StatusRequiresForeignCall:
		return a.status, nil
	case StatusFailed:
		return a.status, a.err
	}

	for {
		progress := false
		blockedIdx := -1
		var blockedBB *BlackBoxWaitInfo
		var blockedFC *brillig.ForeignCallWaitInfo

		for i, op := range a.opcodes {
			if a.solved.Test(uint(i)) {
				continue
			}
			res, bb, fc, err := a.solveOpcode(i, op)
			if err != nil {
				a.log.Debug().Err(err).Int("opcode", i).Msg("solving failed")
				return a.fail(err)
			}
			switch res {
			case resolved:
				a.solved.Set(uint(i))
				progress = true
			case blocked:
				if blockedIdx < 0 {
					blockedIdx, blockedBB, blockedFC = i, bb, fc
				}
			}
		}

		if a.solved.All() {
			a.status = StatusSolved
			return a.status, nil
		}
		if progress {
			continue
		}
		if blockedIdx >= 0 {
			a.pendingIndex = blockedIdx
			if blockedBB != nil {
				a.pendingBlackBox = blockedBB
				a.status = StatusRequiresBlackBox
				a.log.Debug().Int("opcode", blockedIdx).Stringer("function", blockedBB.Function).Msg("waiting on black box")
			} else {
				a.pendingForeign = blockedFC
				a.status = StatusRequiresForeignCall
				a.log.Debug().Int("opcode", blockedIdx).Str("function", blockedFC.Function).Msg("waiting on foreign call")
			}
			return a.status, nil
		}

		i, ok := a.solved.NextClear(0)
		debug.Assert(ok, "an unsolved opcode must exist when nothing progressed")
		return a.fail(&StalledError{OpcodeIndex: int(i), Opcode: a.opcodes[i].String()})
	}
}

func (a *ACVM) solveOpcode(i int, op acir.Opcode) (resolution, *BlackBoxWaitInfo, *brillig.ForeignCallWaitInfo, error) {
	switch o := op.(type) {
	case acir.AssertZero:
		res, err := solveAssertZero(i, &o.Expr, a.witness)
		return res, nil, nil, err
	case acir.BlackBoxCall:
		res, bb, err := solveBlackBox(i, o, a.cfg.BlackBox, a.witness)
		return res, bb, nil, err
	case acir.DirectiveInvert:
		res, err := solveInvert(i, o, a.witness)
		return res, nil, nil, err
	case acir.DirectiveQuotient:
		res, err := solveQuotient(i, o, a.witness)
		return res, nil, nil, err
	case acir.DirectiveToLeRadix:
		res, err := solveToLeRadix(i, o, a.witness)
		return res, nil, nil, err
	case acir.MemoryInit:
		b, res, err := newBlockSolver(o, a.blockOps[o.Block], a.witness)
		if res == resolved && err == nil {
			a.blocks[o.Block] = b
		}
		return res, nil, nil, err
	case acir.MemoryOp:
		b, ok := a.blocks[o.Block]
		if !ok {
			// Block not initialized yet; its MemoryInit is still waiting.
			return stalled, nil, nil, nil
		}
		if !b.upNext(i) {
			// An earlier op on this block has not run; executing now would
			// let a read observe stale content.
			return stalled, nil, nil, nil
		}
		res, err := b.solveMemoryOp(i, o, a.witness)
		if res == resolved && err == nil {
			b.pending = b.pending[1:]
		}
		return res, nil, nil, err
	case acir.BrilligCall:
		res, fc, err := solveBrillig(i, o, a.vms, a.witness)
		return res, nil, fc, err
	default:
		return resolved, nil, nil, fmt.Errorf("unknown opcode type %T at index %d", op, i)
	}
}

func (a *ACVM) fail(err error) (Status, error) {
	a.status = StatusFailed
	a.err = err
	return a.status, a.err
}

// Status returns the session status.
func (a *ACVM) Status() Status { return a.status }

// Err returns the failure cause of a failed session, nil otherwise.
func (a *ACVM) Err() error { return a.err }

// PendingBlackBox returns the black-box request the session waits on, nil
// unless the status is StatusRequiresBlackBox.
func (a *ACVM) PendingBlackBox() *BlackBoxWaitInfo { return a.pendingBlackBox }

// PendingForeignCall returns the foreign-call request the session waits on,
// nil unless the status is StatusRequiresForeignCall.
func (a *ACVM) PendingForeignCall() *brillig.ForeignCallWaitInfo { return a.pendingForeign }

// WitnessMap returns the session's witness store. It is owned by the
// session; read it after the session solves.
func (a *ACVM) WitnessMap() acir.WitnessMap { return a.witness }

// ResolveBlackBox supplies the outputs of the pending black-box request and
// puts the session back in progress. A wrong output count is a caller error
// and leaves the session suspended; a value conflicting with the existing
// assignment fails the session.
func (a *ACVM) ResolveBlackBox(outputs []field.Element) error {
	if a.status != StatusRequiresBlackBox {
		return errors.New("no pending black-box request")
	}
	w := a.pendingBlackBox
	if len(outputs) != w.NumOutputs {
		return fmt.Errorf("%s expects %d outputs, got %d", w.Function, w.NumOutputs, len(outputs))
	}
	op := a.opcodes[a.pendingIndex].(acir.BlackBoxCall)
	for i, wit := range op.Outputs {
		if err := insertValue(a.pendingIndex, w.Function.String(), wit, outputs[i], a.witness); err != nil {
			a.status = StatusFailed
			a.err = err
			return err
		}
	}
	a.solved.Set(uint(a.pendingIndex))
	a.clearPending()
	return nil
}

// ResolveForeignCall supplies the result of the pending foreign call and
// puts the session back in progress. A result whose shape does not match
// the call's destinations is a caller error and leaves the session (and the
// suspended interpreter) waiting.
func (a *ACVM) ResolveForeignCall(result brillig.ForeignCallResult) error {
	if a.status != StatusRequiresForeignCall {
		return errors.New("no pending foreign call")
	}
	if err := a.vms[a.pendingIndex].ResolveForeignCall(result); err != nil {
		return err
	}
	a.clearPending()
	return nil
}

func (a *ACVM) clearPending() {
	a.pendingIndex = -1
	a.pendingBlackBox = nil
	a.pendingForeign = nil
	a.status = StatusInProgress
}
