package brillig

import (
	"errors"

	"github.com/consensys/acvm/field"
)

var errDivisionByZero = errors.New("division by zero")

// evaluateBinaryFieldOp applies op to two field elements.
func evaluateBinaryFieldOp(op BinaryFieldOp, a, b field.Element) (field.Element, error) {
	var res field.Element
	switch op {
	case FieldAdd:
		res.Add(&a, &b)
	case FieldSub:
		res.Sub(&a, &b)
	case FieldMul:
		res.Mul(&a, &b)
	case FieldDiv:
		if b.IsZero() {
			return res, errDivisionByZero
		}
		res.Div(&a, &b)
	case FieldEquals:
		if a.Equal(&b) {
			res.SetOne()
		}
	default:
		return res, errors.New("unknown binary field op")
	}
	return res, nil
}

// evaluateBinaryIntOp applies op to two bitSize-bit unsigned integers,
// reducing the result modulo 2^bitSize. bitSize must be at most 64.
func evaluateBinaryIntOp(op BinaryIntOp, a, b uint64, bitSize uint32) (uint64, error) {
	if bitSize == 0 || bitSize > 64 {
		return 0, errors.New("unsupported integer bit size")
	}
	mask := ^uint64(0)
	if bitSize < 64 {
		mask = (uint64(1) << bitSize) - 1
	}
	a &= mask
	b &= mask

	switch op {
	case IntAdd:
		return (a + b) & mask, nil
	case IntSub:
		return (a - b) & mask, nil
	case IntMul:
		return (a * b) & mask, nil
	case IntUnsignedDiv:
		if b == 0 {
			return 0, errDivisionByZero
		}
		return a / b, nil
	case IntSignedDiv:
		if b == 0 {
			return 0, errDivisionByZero
		}
		return toUnsigned(toSigned(a, bitSize)/toSigned(b, bitSize), bitSize) & mask, nil
	case IntEquals:
		return boolToUint(a == b), nil
	case IntLessThan:
		return boolToUint(a < b), nil
	case IntLessThanEquals:
		return boolToUint(a <= b), nil
	case IntAnd:
		return a & b, nil
	case IntOr:
		return a | b, nil
	case IntXor:
		return a ^ b, nil
	case IntShl:
		if b >= 64 {
			return 0, nil
		}
		return (a << b) & mask, nil
	case IntShr:
		if b >= 64 {
			return 0, nil
		}
		return a >> b, nil
	default:
		return 0, errors.New("unknown binary int op")
	}
}

// toSigned reinterprets a bitSize-bit unsigned value as two's complement.
func toSigned(a uint64, bitSize uint32) int64 {
	if bitSize == 64 {
		return int64(a)
	}
	half := uint64(1) << (bitSize - 1)
	if a < half {
		return int64(a)
	}
	return int64(a) - int64(1)<<bitSize
}

func toUnsigned(a int64, bitSize uint32) uint64 {
	if a >= 0 {
		return uint64(a)
	}
	if bitSize == 64 {
		return uint64(a)
	}
	return uint64(a + int64(1)<<bitSize)
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
