package blackbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/acvm/acir"
	"github.com/consensys/acvm/field"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Lookup(acir.Pedersen)
	assert.False(t, ok)
	assert.False(t, r.IsDeferred(acir.Pedersen))

	identity := func(inputs []field.Element, outputs []field.Element) error {
		copy(outputs, inputs)
		return nil
	}
	r.Register(acir.Pedersen, identity)
	_, ok = r.Lookup(acir.Pedersen)
	assert.True(t, ok)

	// Deferring replaces a local registration and vice versa.
	r.Defer(acir.Pedersen)
	_, ok = r.Lookup(acir.Pedersen)
	assert.False(t, ok)
	assert.True(t, r.IsDeferred(acir.Pedersen))

	r.Register(acir.Pedersen, identity)
	assert.False(t, r.IsDeferred(acir.Pedersen))

	require.Panics(t, func() { r.Register(acir.SHA256, nil) })
}
