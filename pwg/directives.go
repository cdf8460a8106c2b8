package pwg

import (
	"math/big"

	"github.com/consensys/acvm/acir"
	"github.com/consensys/acvm/field"
)

// Directives are deterministic hints. They assign witnesses without
// constraining them; the circuit is expected to carry the constraints that
// pin the assigned values down.

func solveInvert(index int, d acir.DirectiveInvert, m acir.WitnessMap) (resolution, error) {
	x, ok := m.Get(d.X)
	if !ok {
		return stalled, nil
	}
	var inv field.Element
	if !x.IsZero() {
		inv.Inverse(&x)
	}
	return resolved, insertValue(index, "directive invert", d.Result, inv, m)
}

func solveQuotient(index int, d acir.DirectiveQuotient, m acir.WitnessMap) (resolution, error) {
	a, ok := evaluateToConst(&d.A, m)
	if !ok {
		return stalled, nil
	}
	b, ok := evaluateToConst(&d.B, m)
	if !ok {
		return stalled, nil
	}

	// A zero predicate makes the division inert: both outputs are zeroed and
	// the divisor is never inspected.
	if d.Predicate != nil {
		pred, ok := evaluateToConst(d.Predicate, m)
		if !ok {
			return stalled, nil
		}
		if pred.IsZero() {
			if err := insertValue(index, "directive quotient", d.Q, field.Zero(), m); err != nil {
				return resolved, err
			}
			return resolved, insertValue(index, "directive quotient", d.R, field.Zero(), m)
		}
	}

	if b.IsZero() {
		return resolved, &DivideByZeroError{OpcodeIndex: index}
	}

	// Integer division on the canonical representatives.
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(field.BigInt(&a), field.BigInt(&b), r)

	if err := insertValue(index, "directive quotient", d.Q, field.FromBigInt(q), m); err != nil {
		return resolved, err
	}
	return resolved, insertValue(index, "directive quotient", d.R, field.FromBigInt(r), m)
}

func solveToLeRadix(index int, d acir.DirectiveToLeRadix, m acir.WitnessMap) (resolution, error) {
	a, ok := evaluateToConst(&d.A, m)
	if !ok {
		return stalled, nil
	}

	radix := new(big.Int).SetUint64(uint64(d.Radix))
	rest := field.BigInt(&a)
	limb := new(big.Int)
	for _, w := range d.B {
		rest.QuoRem(rest, radix, limb)
		if err := insertValue(index, "directive to-le-radix", w, field.FromBigInt(limb), m); err != nil {
			return resolved, err
		}
	}
	return resolved, nil
}
