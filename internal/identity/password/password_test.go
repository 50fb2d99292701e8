package password_test

import (
	"testing"

	"github.com/abdulhaleem7/identity-credential-service/internal/identity/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	plain := "StrongPassword123!"

	hash, err := password.Hash(plain)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, plain, hash)

	assert.True(t, password.Verify(plain, hash))
	assert.False(t, password.Verify("wrong-password", hash))
}

func TestHash_SaltRandomization(t *testing.T) {
	plain := "same-password"

	first, err := password.Hash(plain)
	require.NoError(t, err)

	second, err := password.Hash(plain)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, password.Verify(plain, first))
	assert.True(t, password.Verify(plain, second))
}

func TestVerify_MalformedHash(t *testing.T) {
	assert.False(t, password.Verify("anything", "not-a-bcrypt-hash"))
	assert.False(t, password.Verify("anything", ""))
}
