// Package acvm provides a virtual machine that solves compiled arithmetic
// circuits (ACIR) over a prime field.
//
// Given a circuit and a partial witness assignment, the machine derives the
// value of every remaining witness, delegates cryptographic black-box
// functions to a caller-supplied capability, and executes embedded Brillig
// bytecode for non-arithmetic logic. When a computation requires data it
// cannot produce itself (an oracle), the machine suspends and hands control
// back to the caller, who resumes it with the result.
//
// The entry point is the pwg package; acir holds the data model, brillig the
// bytecode interpreter, blackbox the capability interface.
package acvm

import (
	"github.com/blang/semver/v4"
)

// Version of the module and of the circuit wire format it reads and writes.
var Version = semver.MustParse("0.1.0")
