package hash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/dukaan/pkg/hash"
)

func TestPasswordAndVerify(t *testing.T) {
	h, err := hash.Password("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", h, "hash must not equal the plaintext")
	assert.True(t, hash.Verify(h, "secret1"))
	assert.False(t, hash.Verify(h, "wrong"))
}

func TestRandomSalt(t *testing.T) {
	h1, err := hash.Password("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := hash.Password("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password must differ")
	assert.True(t, hash.Verify(h1, "secret1"))
	assert.True(t, hash.Verify(h2, "secret1"))
}

func TestVerifyGarbageHash(t *testing.T) {
	assert.False(t, hash.Verify("not-a-bcrypt-hash", "secret1"))
}
