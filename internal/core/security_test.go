// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("same input")
	require.NoError(t, err)
	h2, err := HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	_, err := VerifyPassword("anything", "not-an-encoded-hash")
	require.Error(t, err)
}

func TestVerifyPasswordTimingSafe_MissingHash(t *testing.T) {
	ok, _, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	empty := ""
	ok, _, err = VerifyPasswordTimingSafe("anything", &empty)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateNumericCode(t *testing.T) {
	for range 20 {
		code, err := GenerateNumericCode(7)
		require.NoError(t, err)
		require.Len(t, code, 7)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "unexpected rune %q", c)
		}
	}

	_, err := GenerateNumericCode(0)
	require.Error(t, err)
}

func TestGenerateOpaqueID(t *testing.T) {
	id, err := GenerateOpaqueID(16)
	require.NoError(t, err)
	assert.Len(t, id, 32)

	other, err := GenerateOpaqueID(16)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestTokenHashing(t *testing.T) {
	hash := HashToken("secret-token")

	assert.NotEqual(t, "secret-token", hash)
	assert.Len(t, hash, 64)
	assert.True(t, CompareTokenHash("secret-token", hash))
	assert.False(t, CompareTokenHash("other-token", hash))
}
