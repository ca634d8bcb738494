package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/infrastructure/config"
)

func newTestManager(expiration time.Duration) *TokenManager {
	return NewTokenManager(config.JWTConfig{
		Secret:     "test-secret-at-least-32-characters-long",
		Expiration: expiration,
		Issuer:     "backoffice-test",
	})
}

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	manager := newTestManager(time.Hour)
	userID := uuid.New()

	token, expiresAt, err := manager.Generate(userID, "jdoe", RoleSeller)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, RoleSeller, claims.Role)

	parsed, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestTokenManager_Validate(t *testing.T) {
	t.Run("rejects expired token", func(t *testing.T) {
		manager := newTestManager(-time.Minute)
		token, _, err := manager.Generate(uuid.New(), "jdoe", RoleAdmin)
		require.NoError(t, err)

		_, err = manager.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		manager := newTestManager(time.Hour)
		_, err := manager.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		manager := newTestManager(time.Hour)
		other := NewTokenManager(config.JWTConfig{
			Secret:     "another-secret-also-32-characters-xx",
			Expiration: time.Hour,
			Issuer:     "backoffice-test",
		})
		token, _, err := other.Generate(uuid.New(), "jdoe", RoleAdmin)
		require.NoError(t, err)

		_, err = manager.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleSeller.IsValid())
	assert.False(t, Role("owner").IsValid())
}
