package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateAccessToken(7, "mary@example.com", "user", "secret", 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "mary@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "smartchama", claims.Issuer)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(7, "mary@example.com", "user", "secret", 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateExpired(t *testing.T) {
	token, err := GenerateAccessToken(7, "mary@example.com", "user", "secret", -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateGarbage(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
