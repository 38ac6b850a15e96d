package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	h, err := NewBcryptHasher(MinCost)
	require.NoError(t, err)
	return h
}

func TestNewBcryptHasher_RejectsWeakCost(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost)
	require.ErrorIs(t, err, ErrInvalidCost)

	_, err = NewBcryptHasher(bcrypt.MaxCost + 1)
	require.ErrorIs(t, err, ErrInvalidCost)
}

func TestHashAndVerify(t *testing.T) {
	h := newHasher(t)

	hash, err := h.Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cost, MinCost)

	assert.True(t, h.Verify("password123", hash))
	assert.False(t, h.Verify("password124", hash))
}

func TestHash_IsSalted(t *testing.T) {
	h := newHasher(t)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHash_InvalidInput(t *testing.T) {
	h := newHasher(t)

	_, err := h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestVerify_MalformedHash(t *testing.T) {
	h := newHasher(t)

	assert.False(t, h.Verify("password123", ""))
	assert.False(t, h.Verify("password123", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("password123", "$2a$10$short"))
}
