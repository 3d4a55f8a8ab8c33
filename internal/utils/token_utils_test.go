package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, expiresAt, err := GenerateJWT("user-1", "jti-1", "secret", time.Hour, "dental-clinic-app")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseAndValidateJWT(token, "secret", "dental-clinic-app")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "jti-1", claims.ID)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	expired, _, err := GenerateJWT("user-1", "jti-1", "secret", -time.Minute, "dental-clinic-app")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret", "dental-clinic-app")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	valid, _, err := GenerateJWT("user-1", "jti-1", "secret", time.Hour, "dental-clinic-app")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(valid, "other-secret", "dental-clinic-app")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = ParseAndValidateJWT(valid, "secret", "someone-else")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, PasswordMatches(hash, "correct horse"))
	assert.False(t, PasswordMatches(hash, "battery staple"))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.Error(t, err)
}
