package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"milmed-app-server/internal/config"
	"milmed-app-server/internal/models"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		JWTExpirationMinutes: 15,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testJWTConfig()
	account := &models.Account{
		ID:       42,
		Identity: "98765432",
		Role:     models.RoleDoctor,
	}

	token, err := GenerateToken(account, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, cfg.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.AccountID)
	assert.Equal(t, "98765432", claims.Identity)
	assert.Equal(t, models.RoleDoctor, claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	account := &models.Account{ID: 1, Identity: "admin001", Role: models.RoleAdmin}

	token, err := GenerateToken(account, cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, "some-other-secret")
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token", "test-secret")
	assert.Error(t, err)
}
