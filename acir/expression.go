package acir

import (
	"strings"

	"github.com/consensys/acvm/field"
)

// MulTerm is a quadratic term q * wL * wR of an expression.
type MulTerm struct {
	Coeff    field.Element
	WitnessL Witness
	WitnessR Witness
}

// LinearTerm is a linear term q * w of an expression.
type LinearTerm struct {
	Coeff   field.Element
	Witness Witness
}

// Expression is a polynomial of degree at most two over witnesses:
//
//	sum(q_i * wL_i * wR_i) + sum(q_j * w_j) + constant
//
// Expressions are immutable once constructed.
type Expression struct {
	MulTerms    []MulTerm
	LinearTerms []LinearTerm
	Constant    field.Element
}

// NewConstantExpression returns the expression c.
func NewConstantExpression(c field.Element) Expression {
	return Expression{Constant: c}
}

// NewLinearExpression returns the expression c * w.
func NewLinearExpression(c field.Element, w Witness) Expression {
	return Expression{LinearTerms: []LinearTerm{{Coeff: c, Witness: w}}}
}

// WitnessExpression returns the expression 1 * w.
func WitnessExpression(w Witness) Expression {
	return NewLinearExpression(field.One(), w)
}

// Degree returns the degree of the polynomial.
func (e *Expression) Degree() int {
	if len(e.MulTerms) > 0 {
		return 2
	}
	if len(e.LinearTerms) > 0 {
		return 1
	}
	return 0
}

// IsConst reports whether the expression has no witness terms.
func (e *Expression) IsConst() bool {
	return len(e.MulTerms) == 0 && len(e.LinearTerms) == 0
}

// ToConst returns the constant value of the expression, if it has no witness
// terms.
func (e *Expression) ToConst() (field.Element, bool) {
	if !e.IsConst() {
		return field.Element{}, false
	}
	return e.Constant, true
}

// ToWitness returns the single witness w if the expression is exactly 1 * w.
func (e *Expression) ToWitness() (Witness, bool) {
	if len(e.MulTerms) != 0 || len(e.LinearTerms) != 1 || !e.Constant.IsZero() {
		return 0, false
	}
	if !e.LinearTerms[0].Coeff.IsOne() {
		return 0, false
	}
	return e.LinearTerms[0].Witness, true
}

// AnyWitness returns some witness referenced by the expression, for error
// reporting.
func (e *Expression) AnyWitness() (Witness, bool) {
	if len(e.LinearTerms) > 0 {
		return e.LinearTerms[0].Witness, true
	}
	if len(e.MulTerms) > 0 {
		return e.MulTerms[0].WitnessL, true
	}
	return 0, false
}

func (e *Expression) String() string {
	var sb strings.Builder
	for i := range e.MulTerms {
		t := &e.MulTerms[i]
		sb.WriteString(t.Coeff.String())
		sb.WriteString("*")
		sb.WriteString(t.WitnessL.String())
		sb.WriteString("*")
		sb.WriteString(t.WitnessR.String())
		sb.WriteString(" + ")
	}
	for i := range e.LinearTerms {
		t := &e.LinearTerms[i]
		sb.WriteString(t.Coeff.String())
		sb.WriteString("*")
		sb.WriteString(t.Witness.String())
		sb.WriteString(" + ")
	}
	sb.WriteString(e.Constant.String())
	return sb.String()
}
