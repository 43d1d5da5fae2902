package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/internal/middleware"
	"github.com/luxride/admin-backend/internal/services"
)

// WebSocketHandler attaches the admin tab to the booking change feed.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.GetSession(c)
		hub.HandleWebSocket(c.Writer, c.Request, session.AdminID)
	}
}
