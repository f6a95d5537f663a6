package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateTokenPair(t *testing.T) {
	tests := []struct {
		name          string
		userID        uint
		email         string
		role          string
		accessExpiry  time.Duration
		refreshExpiry time.Duration
	}{
		{
			name:          "Admin token",
			userID:        1,
			email:         "admin@amorpet.com.br",
			role:          "admin",
			accessExpiry:  15 * time.Minute,
			refreshExpiry: 7 * 24 * time.Hour,
		},
		{
			name:          "Super admin token",
			userID:        2,
			email:         "dona@amorpet.com.br",
			role:          "super_admin",
			accessExpiry:  15 * time.Minute,
			refreshExpiry: 7 * 24 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := GenerateTokenPair(
				tt.userID,
				tt.email,
				tt.role,
				testSecret,
				tt.accessExpiry,
				tt.refreshExpiry,
			)

			require.NoError(t, err)
			require.NotNil(t, tokens)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
			assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)
		})
	}
}

func TestValidateToken(t *testing.T) {
	userID := uint(123)
	email := "admin@amorpet.com.br"
	role := "admin"

	tokens, err := GenerateTokenPair(userID, email, role, testSecret, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	t.Run("Valid token", func(t *testing.T) {
		claims, err := ValidateToken(tokens.AccessToken, testSecret)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, email, claims.Email)
		assert.Equal(t, role, claims.Role)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		claims, err := ValidateToken(tokens.AccessToken, "wrong-secret")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("Garbage token", func(t *testing.T) {
		claims, err := ValidateToken("not-a-jwt", testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("Expired token", func(t *testing.T) {
		expired, err := GenerateTokenPair(userID, email, role, testSecret, -time.Minute, -time.Minute)
		require.NoError(t, err)

		claims, err := ValidateToken(expired.AccessToken, testSecret)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.Nil(t, claims)
	})
}
