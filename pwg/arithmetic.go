package pwg

import (
	"github.com/consensys/acvm/acir"
	"github.com/consensys/acvm/field"
)

// resolution is the outcome of one attempt at one opcode. A stalled opcode
// is retried on the next sweep; a blocked one waits on the caller.
type resolution uint8

const (
	resolved resolution = iota
	stalled
	blocked
)

// evaluate substitutes every known witness into e and folds the result.
// Multiplication terms with one known factor degrade to linear terms; linear
// terms over the same witness are combined. Zero coefficients are kept so
// that a lone unknown whose coefficient cancelled is still visible.
func evaluate(e *acir.Expression, m acir.WitnessMap) acir.Expression {
	out := acir.Expression{Constant: e.Constant}

	for _, t := range e.MulTerms {
		l, lok := m.Get(t.WitnessL)
		r, rok := m.Get(t.WitnessR)
		var c field.Element
		switch {
		case lok && rok:
			c.Mul(&l, &r).Mul(&c, &t.Coeff)
			out.Constant.Add(&out.Constant, &c)
		case lok:
			c.Mul(&t.Coeff, &l)
			out.LinearTerms = append(out.LinearTerms, acir.LinearTerm{Coeff: c, Witness: t.WitnessR})
		case rok:
			c.Mul(&t.Coeff, &r)
			out.LinearTerms = append(out.LinearTerms, acir.LinearTerm{Coeff: c, Witness: t.WitnessL})
		default:
			out.MulTerms = append(out.MulTerms, t)
		}
	}

	for _, t := range e.LinearTerms {
		if v, ok := m.Get(t.Witness); ok {
			var c field.Element
			c.Mul(&t.Coeff, &v)
			out.Constant.Add(&out.Constant, &c)
		} else {
			out.LinearTerms = append(out.LinearTerms, t)
		}
	}

	out.LinearTerms = combineLinearTerms(out.LinearTerms)
	return out
}

func combineLinearTerms(terms []acir.LinearTerm) []acir.LinearTerm {
	if len(terms) < 2 {
		return terms
	}
	combined := terms[:0]
	seen := make(map[acir.Witness]int, len(terms))
	for _, t := range terms {
		if i, ok := seen[t.Witness]; ok {
			combined[i].Coeff.Add(&combined[i].Coeff, &t.Coeff)
			continue
		}
		seen[t.Witness] = len(combined)
		combined = append(combined, t)
	}
	return combined
}

// evaluateToConst reduces e under m and reports whether it is fully known.
func evaluateToConst(e *acir.Expression, m acir.WitnessMap) (field.Element, bool) {
	reduced := evaluate(e, m)
	return reduced.ToConst()
}

// insertValue records w = v, converting a conflicting assignment into an
// unsatisfied-constraint failure at the given opcode.
func insertValue(index int, opcode string, w acir.Witness, v field.Element, m acir.WitnessMap) error {
	if err := m.Insert(w, v); err != nil {
		return &UnsatisfiedConstraintError{OpcodeIndex: index, Opcode: opcode, Cause: err}
	}
	return nil
}

// solveAssertZero enforces e == 0 under the current assignment. With zero
// unknowns the constant must vanish. With exactly one unknown, appearing
// linearly, the witness is derived as -constant/coefficient. Expressions
// with an unknown product or several unknowns are left for a later sweep.
func solveAssertZero(index int, e *acir.Expression, m acir.WitnessMap) (resolution, error) {
	reduced := evaluate(e, m)

	if len(reduced.MulTerms) > 0 {
		return stalled, nil
	}

	switch len(reduced.LinearTerms) {
	case 0:
		if !reduced.Constant.IsZero() {
			return resolved, &UnsatisfiedConstraintError{OpcodeIndex: index, Opcode: "assert-zero"}
		}
		return resolved, nil
	case 1:
		t := reduced.LinearTerms[0]
		if t.Coeff.IsZero() {
			return resolved, &DivideByZeroError{OpcodeIndex: index}
		}
		var v field.Element
		v.Neg(&reduced.Constant)
		v.Div(&v, &t.Coeff)
		return resolved, insertValue(index, "assert-zero", t.Witness, v, m)
	default:
		return stalled, nil
	}
}
