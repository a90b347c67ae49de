package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	hash, err := HashPassword("pizza yolo")
	require.NoError(t, err, "hashing should not fail")
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "pizza yolo", hash, "hash should not be the clear-text password")

	assert.True(t, CheckPassword(hash, "pizza yolo"))
	assert.False(t, CheckPassword(hash, "pizza"))
	assert.False(t, CheckPassword("", "pizza yolo"), "empty hash should never match")
}
