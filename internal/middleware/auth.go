package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/luxride/admin-backend/pkg/utils"
)

const sessionKey = "session"

// Session is the authenticated admin context attached to each request. Handlers
// read it through GetSession instead of poking loose context keys.
type Session struct {
	AdminID uint
	Email   string
	Role    string
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// First try the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Fall back to a query parameter (for WebSocket upgrades)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(401, gin.H{"success": false, "error": "UNAUTHORIZED", "message": "Authorization header or token query parameter required"})
			c.Abort()
			return
		}

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.JSON(401, gin.H{"success": false, "error": "UNAUTHORIZED", "message": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(401, gin.H{"success": false, "error": "UNAUTHORIZED", "message": "Invalid token claims"})
			c.Abort()
			return
		}

		id, idOK := claims["id"].(float64)
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)
		if !idOK {
			c.JSON(401, gin.H{"success": false, "error": "UNAUTHORIZED", "message": "Invalid token claims"})
			c.Abort()
			return
		}

		c.Set(sessionKey, &Session{AdminID: uint(id), Email: email, Role: role})
		c.Next()
	}
}

// GetSession returns the request's admin session, or nil outside the
// authenticated route group.
func GetSession(c *gin.Context) *Session {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	session, _ := value.(*Session)
	return session
}
