// Package blackbox defines the capability through which circuit solving
// reaches cryptographic primitives it does not implement itself.
//
// A Registry maps each black-box function to one of two behaviours. A local
// Func computes outputs in-process. A deferred function has no in-process
// implementation; when the solver reaches it, solving suspends and the
// caller is handed the concrete inputs so an external backend can produce
// the outputs.
//
// Bitwise AND, XOR and range checks are always computed by the solver
// directly and never consult the registry.
package blackbox

import (
	"fmt"

	"github.com/consensys/acvm/acir"
	"github.com/consensys/acvm/field"
)

// Func computes the outputs of a black-box function from fully determined
// inputs. len(outputs) is fixed by the opcode; the function must fill every
// slot. Returning an error fails the circuit.
type Func func(inputs []field.Element, outputs []field.Element) error

// Registry associates black-box functions with their resolution strategy.
// The zero value defers nothing and implements nothing; every call through
// it reports the function as unsupported.
type Registry struct {
	local    map[acir.BlackBoxFunc]Func
	deferred map[acir.BlackBoxFunc]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		local:    make(map[acir.BlackBoxFunc]Func),
		deferred: make(map[acir.BlackBoxFunc]struct{}),
	}
}

// Register installs f as the in-process implementation of fn. It overwrites
// a previous registration, local or deferred.
func (r *Registry) Register(fn acir.BlackBoxFunc, f Func) {
	if f == nil {
		panic(fmt.Sprintf("nil implementation registered for %s", fn))
	}
	r.local[fn] = f
	delete(r.deferred, fn)
}

// Defer marks fn as resolvable only by the caller. Solving blocks when fn is
// reached and resumes once the caller supplies the outputs.
func (r *Registry) Defer(fn acir.BlackBoxFunc) {
	r.deferred[fn] = struct{}{}
	delete(r.local, fn)
}

// Lookup returns the local implementation of fn, if any.
func (r *Registry) Lookup(fn acir.BlackBoxFunc) (Func, bool) {
	f, ok := r.local[fn]
	return f, ok
}

// IsDeferred reports whether fn resolves through the caller.
func (r *Registry) IsDeferred(fn acir.BlackBoxFunc) bool {
	_, ok := r.deferred[fn]
	return ok
}
