// AngelaMos | 2026
// security_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/jobboard/internal/config"
)

var fastParams = config.PasswordConfig{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	KeyLength:   32,
}

func TestPasswordHasherRoundTrip(t *testing.T) {
	h, err := NewPasswordHasher(fastParams)
	require.NoError(t, err)

	hash, err := h.Hash("correct horse battery")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := h.Verify("correct horse battery", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasherRehashOnParamChange(t *testing.T) {
	old, err := NewPasswordHasher(fastParams)
	require.NoError(t, err)
	hash, err := old.Hash("secret-password")
	require.NoError(t, err)

	stronger := fastParams
	stronger.Iterations = 2
	h, err := NewPasswordHasher(stronger)
	require.NoError(t, err)

	ok, fresh, err := h.VerifyAndRehash("secret-password", hash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, fresh)

	ok, fresh, err = h.VerifyAndRehash("secret-password", fresh)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, fresh)
}

func TestVerifyTimingSafeWithoutHash(t *testing.T) {
	h, err := NewPasswordHasher(fastParams)
	require.NoError(t, err)

	ok, _, err := h.VerifyTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	h, err := NewPasswordHasher(fastParams)
	require.NoError(t, err)

	_, err = h.Verify("x", "not-a-hash")
	assert.ErrorIs(t, err, errMalformedHash)
}

func TestTokenHash(t *testing.T) {
	tok, err := GenerateRefreshToken()
	require.NoError(t, err)
	assert.True(t, CompareTokenHash(tok, HashToken(tok)))
	assert.False(t, CompareTokenHash(tok+"x", HashToken(tok)))
}
