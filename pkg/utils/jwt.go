package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/luxride/admin-backend/internal/models"
)

// GenerateToken issues an admin session token valid for 24 hours.
func GenerateToken(admin *models.AdminUser) (string, error) {
	claims := jwt.MapClaims{
		"id":    admin.ID,
		"email": admin.Email,
		"role":  admin.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
}
