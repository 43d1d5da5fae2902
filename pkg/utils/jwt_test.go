package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/luxride/admin-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	admin := &models.AdminUser{
		Model: gorm.Model{ID: 42},
		Email: "ops@luxride.example",
		Role:  "admin",
	}

	tokenString, err := GenerateToken(admin)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := ValidateToken(tokenString)
	require.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["id"])
	assert.Equal(t, "ops@luxride.example", claims["email"])
	assert.Equal(t, "admin", claims["role"])
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	admin := &models.AdminUser{Model: gorm.Model{ID: 1}, Email: "a@b.c", Role: "admin"}
	tokenString, err := GenerateToken(admin)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	token, err := ValidateToken(tokenString)
	if err == nil {
		assert.False(t, token.Valid)
	} else {
		assert.Error(t, err)
	}
}
