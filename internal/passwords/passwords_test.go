package passwords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	h, err := NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)

	hashed, err := h.Hash("123456")
	require.NoError(t, err)

	assert.NotEqual(t, "123456", hashed)
	assert.True(t, strings.HasPrefix(hashed, "$2a$"))
	assert.True(t, h.Compare("123456", hashed))
	assert.False(t, h.Compare("654321", hashed))
	assert.False(t, h.Compare("123456", "not-a-hash"))
}

func TestBcrypt_SaltsEachHash(t *testing.T) {
	h, err := NewBcrypt(bcrypt.MinCost)
	require.NoError(t, err)

	a, err := h.Hash("secret")
	require.NoError(t, err)
	b, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewBcrypt_InvalidCost(t *testing.T) {
	_, err := NewBcrypt(bcrypt.MinCost - 1)
	require.Error(t, err)
	_, err = NewBcrypt(bcrypt.MaxCost + 1)
	require.Error(t, err)
}
