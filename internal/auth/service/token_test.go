package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_GenerateAndValidate(t *testing.T) {
	tg := NewTokenGenerator("b8a3c2267dc85f855dea9b46b452bf20", time.Hour, 7*24*time.Hour)

	t.Run("round trip preserves user ID and role", func(t *testing.T) {
		accessToken, refreshToken, err := tg.GenerateTokens(123, 2)
		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.NotEqual(t, accessToken, refreshToken)

		userID, role, err := tg.ValidateAccessToken(accessToken)
		require.NoError(t, err)
		assert.Equal(t, 123, userID)
		assert.Equal(t, 2, role)

		assert.NoError(t, tg.ValidateRefreshToken(refreshToken))
	})

	t.Run("tokens have three JWT segments", func(t *testing.T) {
		accessToken, refreshToken, err := tg.GenerateTokens(1, 1)
		require.NoError(t, err)
		assert.Len(t, strings.Split(accessToken, "."), 3)
		assert.Len(t, strings.Split(refreshToken, "."), 3)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		_, refreshToken, err := tg.GenerateTokens(1, 1)
		require.NoError(t, err)

		_, _, err = tg.ValidateAccessToken(refreshToken)
		assert.Error(t, err)
	})

	t.Run("access token rejected as refresh token", func(t *testing.T) {
		accessToken, _, err := tg.GenerateTokens(1, 1)
		require.NoError(t, err)

		assert.Error(t, tg.ValidateRefreshToken(accessToken))
	})
}

func TestTokenGenerator_ValidateAccessToken_Failures(t *testing.T) {
	tg := NewTokenGenerator("secret-one", time.Hour, 7*24*time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, _, err := tg.ValidateAccessToken("not-a-jwt")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenGenerator("secret-two", time.Hour, 7*24*time.Hour)
		accessToken, _, err := other.GenerateTokens(5, 1)
		require.NoError(t, err)

		_, _, err = tg.ValidateAccessToken(accessToken)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenGenerator("secret-one", -time.Minute, 7*24*time.Hour)
		accessToken, _, err := expired.GenerateTokens(5, 1)
		require.NoError(t, err)

		_, _, err = tg.ValidateAccessToken(accessToken)
		assert.Error(t, err)
	})
}

func TestTokenGenerator_RefreshTokenExpiry(t *testing.T) {
	tg := NewTokenGenerator("secret", time.Hour, 48*time.Hour)

	assert.Equal(t, 48*time.Hour, tg.RefreshTokenExpiry())
}
