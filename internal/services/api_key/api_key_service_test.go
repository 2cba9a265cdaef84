package api_key

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIngestKey(t *testing.T) {
	key, err := newIngestKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, KeyPrefix))
	// 32 random bytes hex-encoded after the prefix
	assert.Len(t, key, len(KeyPrefix)+64)
}

func TestNewIngestKeyUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := newIngestKey()
		require.NoError(t, err)
		assert.False(t, seen[key])
		seen[key] = true
	}
}
