package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/internal/models"
	"github.com/luxride/admin-backend/pkg/apperrors"
	"github.com/luxride/admin-backend/pkg/response"
	"gorm.io/gorm"
)

func chatBookingID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("bookingId"), 10, 32)
	if err != nil {
		return 0, apperrors.NewValidation("Invalid booking ID")
	}
	return uint(id), nil
}

// isChatParticipant reports whether userID is the booking's customer or its
// assigned driver.
func isChatParticipant(booking *models.Booking, userID uint) bool {
	if booking.CustomerID == userID {
		return true
	}
	return booking.DriverID != nil && *booking.DriverID == userID
}

// MarkMessagesRead marks every unread message addressed to userId on a booking
// as read and returns how many were flipped.
func MarkMessagesRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := chatBookingID(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		userIDStr := c.Query("userId")
		if userIDStr == "" {
			response.Error(c, apperrors.NewValidation("userId query parameter is required"))
			return
		}
		userID, err := strconv.ParseUint(userIDStr, 10, 32)
		if err != nil {
			response.Error(c, apperrors.NewValidation("Invalid userId"))
			return
		}

		var booking models.Booking
		if err := db.First(&booking, bookingID).Error; err != nil {
			response.Error(c, apperrors.NewNotFound("Booking not found"))
			return
		}

		if !isChatParticipant(&booking, uint(userID)) {
			response.Error(c, apperrors.NewForbidden("User is not a participant of this booking"))
			return
		}

		result := db.Model(&models.ChatMessage{}).
			Where("booking_id = ? AND receiver_id = ? AND read_at IS NULL", bookingID, userID).
			Update("read_at", time.Now())
		if result.Error != nil {
			response.Error(c, apperrors.NewDatabase(result.Error))
			return
		}

		response.OK(c, gin.H{
			"bookingId":   bookingID,
			"markedCount": result.RowsAffected,
		})
	}
}

// GetMessages returns a booking's chat messages, oldest first.
func GetMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := chatBookingID(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		var booking models.Booking
		if err := db.First(&booking, bookingID).Error; err != nil {
			response.Error(c, apperrors.NewNotFound("Booking not found"))
			return
		}

		var messages []models.ChatMessage
		if err := db.Where("booking_id = ?", bookingID).
			Order("created_at ASC").
			Find(&messages).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		items := make([]map[string]interface{}, len(messages))
		for i := range messages {
			items[i] = messages[i].Response()
		}

		response.OK(c, items)
	}
}
