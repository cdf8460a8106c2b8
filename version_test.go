package acvm

import (
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	// The version string gates circuit deserialization; it must stay a
	// parseable semver.
	parsed, err := semver.Parse(Version.String())
	require.NoError(t, err)
	require.Equal(t, Version, parsed)
}
