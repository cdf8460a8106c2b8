// Package field exposes the prime field the virtual machine computes over.
//
// The arithmetic itself comes from gnark-crypto; this package fixes the
// canonical exchange format ("0x"-prefixed, fixed-width, big-endian hex) and
// the handful of conversions the interpreter needs.
package field

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element is an element of the scalar field.
type Element = fr.Element

// Bytes is the length of the canonical byte encoding of an Element.
const Bytes = fr.Bytes

// Modulus returns the field modulus as a big.Int.
func Modulus() *big.Int {
	return fr.Modulus()
}

// Zero returns the additive identity.
func Zero() Element {
	var z Element
	return z
}

// One returns the multiplicative identity.
func One() Element {
	var o Element
	o.SetOne()
	return o
}

// NewElement returns v as a field element.
func NewElement(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

// FromBigInt returns v mod p as a field element.
func FromBigInt(v *big.Int) Element {
	var e Element
	e.SetBigInt(v)
	return e
}

// BigInt returns e in regular (non-Montgomery) form.
func BigInt(e *Element) *big.Int {
	var r big.Int
	e.BigInt(&r)
	return &r
}

// BitLen returns the length of the absolute value of e in bits.
func BitLen(e *Element) int {
	return BigInt(e).BitLen()
}

// ToUint64 returns e as a uint64 if it fits.
func ToUint64(e *Element) (uint64, bool) {
	if !e.IsUint64() {
		return 0, false
	}
	return e.Uint64(), true
}

// ToHex returns the canonical textual form of e: fixed-width big-endian hex,
// zero-padded to the modulus byte length and prefixed with "0x". This is the
// exchange format across the solver boundary and round-trips exactly.
func ToHex(e *Element) string {
	b := e.Bytes()
	return "0x" + hex.EncodeToString(b[:])
}

// FromHex parses the canonical textual form produced by ToHex. Shorter hex
// strings are accepted and zero-extended; values are reduced mod p.
func FromHex(s string) (Element, error) {
	var e Element
	trimmed, ok := strings.CutPrefix(s, "0x")
	if !ok {
		trimmed, ok = strings.CutPrefix(s, "0X")
	}
	if !ok {
		return e, fmt.Errorf("field element %q: missing 0x prefix", s)
	}
	if trimmed == "" {
		return e, fmt.Errorf("field element %q: empty", s)
	}
	v, success := new(big.Int).SetString(trimmed, 16)
	if !success {
		return e, fmt.Errorf("field element %q: invalid hex", s)
	}
	e.SetBigInt(v)
	return e, nil
}

// And returns the bitwise AND of a and b, truncated to bits.
func And(a, b *Element, bits uint32) Element {
	return truncate(new(big.Int).And(BigInt(a), BigInt(b)), bits)
}

// Xor returns the bitwise XOR of a and b, truncated to bits.
func Xor(a, b *Element, bits uint32) Element {
	return truncate(new(big.Int).Xor(BigInt(a), BigInt(b)), bits)
}

func truncate(v *big.Int, bits uint32) Element {
	mask := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	mask.Sub(mask, big.NewInt(1))
	return FromBigInt(v.And(v, mask))
}
