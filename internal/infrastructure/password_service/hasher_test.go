package passwordservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_Password(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("S3cret!pass")
	require.NoError(t, err)
	assert.NotEqual(t, "S3cret!pass", hash)

	assert.NoError(t, h.ComparePasswordHash("S3cret!pass", hash))
	assert.ErrorIs(t, h.ComparePasswordHash("wrong", hash), ErrPasswordMismatch)
	assert.Error(t, h.ComparePasswordHash("S3cret!pass", "not-a-hash"))
}

func TestHasher_String(t *testing.T) {
	h := NewHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)

	digest := h.HashString("refresh-token")
	assert.Len(t, digest, 64)
	assert.True(t, h.CheckHash("refresh-token", digest))
	assert.False(t, h.CheckHash("other-token", digest))
	assert.Empty(t, h.HashString(""))
}
