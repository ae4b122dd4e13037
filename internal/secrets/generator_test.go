package secrets

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	certIDPattern = regexp.MustCompile(`^CERT-B26A001-[0-9A-F]{12}$`)
	serialPattern = regexp.MustCompile(`^SK-[0-9A-F]{12}$`)
)

func TestGenerateBundleFormat(t *testing.T) {
	bundle, err := GenerateBundle("B26A001")
	require.NoError(t, err)

	assert.Regexp(t, certIDPattern, bundle.CertID)
	assert.Regexp(t, serialPattern, bundle.SerialNumber)
	assert.NotEqual(t, [16]byte{}, bundle.GuillocheKey)
	assert.NotEqual(t, [16]byte{}, bundle.BorderKey)
}

func TestGenerateBundleFieldsIndependent(t *testing.T) {
	bundle, err := GenerateBundle("B26A001")
	require.NoError(t, err)

	// The two pattern keys must never coincide; with independent 16-byte
	// draws a collision would point at a broken random source.
	assert.NotEqual(t, bundle.GuillocheKey, bundle.BorderKey)
}

func TestGenerateBundleNoCollisions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping statistical collision test in short mode")
	}

	const n = 100000
	certIDs := make(map[string]struct{}, n)
	serials := make(map[string]struct{}, n)
	guillocheKeys := make(map[[16]byte]struct{}, n)
	borderKeys := make(map[[16]byte]struct{}, n)

	for i := 0; i < n; i++ {
		bundle, err := GenerateBundle("B26A001")
		require.NoError(t, err)

		_, dup := certIDs[bundle.CertID]
		require.False(t, dup, "cert ID collision after %d generations", i)
		certIDs[bundle.CertID] = struct{}{}

		_, dup = serials[bundle.SerialNumber]
		require.False(t, dup, "serial collision after %d generations", i)
		serials[bundle.SerialNumber] = struct{}{}

		_, dup = guillocheKeys[bundle.GuillocheKey]
		require.False(t, dup, "guilloche key collision after %d generations", i)
		guillocheKeys[bundle.GuillocheKey] = struct{}{}

		_, dup = borderKeys[bundle.BorderKey]
		require.False(t, dup, "border key collision after %d generations", i)
		borderKeys[bundle.BorderKey] = struct{}{}
	}
}
