package state

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesURLSafeEntropy(t *testing.T) {
	s, err := Generate()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(s)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestGenerateIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s, err := Generate()
		require.NoError(t, err)
		assert.False(t, seen[s])
		seen[s] = true
	}
}

func TestValidate(t *testing.T) {
	s, err := Generate()
	require.NoError(t, err)
	other, err := Generate()
	require.NoError(t, err)

	assert.True(t, Validate(s, s))
	assert.False(t, Validate(s, other))
	assert.False(t, Validate("", s))
	assert.False(t, Validate(s, ""))
	assert.False(t, Validate("", ""))
}
