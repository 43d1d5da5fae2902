package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/internal/models"
	"github.com/luxride/admin-backend/internal/services"
	"github.com/luxride/admin-backend/pkg/apperrors"
	"github.com/luxride/admin-backend/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// parseLimitOffset reads offset-based paging with sane bounds.
func parseLimitOffset(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ListBookings returns a page of bookings, newest first, with joined customer
// and driver data. Supports a status filter and search over booking number and
// customer name.
func ListBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := parseLimitOffset(c)
		status := c.Query("status")
		search := c.Query("search")

		query := db.Model(&models.Booking{}).
			Joins("LEFT JOIN customers ON customers.id = bookings.customer_id")
		if status != "" {
			query = query.Where("bookings.status = ?", status)
		}
		if search != "" {
			pattern := "%" + search + "%"
			query = query.Where("bookings.booking_number ILIKE ? OR customers.name ILIKE ?", pattern, pattern)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		var bookings []models.Booking
		if err := query.Preload("Customer").Preload("Driver").
			Order("bookings.created_at DESC").
			Limit(limit).Offset(offset).
			Find(&bookings).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		items := make([]map[string]interface{}, len(bookings))
		for i := range bookings {
			items[i] = bookings[i].Response()
		}

		response.Paginated(c, items, total, limit, offset)
	}
}

// GetBooking returns one booking with joined customer and driver data.
func GetBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := parseBookingID(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		var booking models.Booking
		if err := db.Preload("Customer").Preload("Driver").First(&booking, bookingID).Error; err != nil {
			response.Error(c, apperrors.NewNotFound("Booking not found"))
			return
		}

		response.OK(c, booking.Response())
	}
}

// CancelBookingAdmin handles an admin cancelling a booking. Admins may cancel
// from any status not already cancelled, completed or in progress; the rule is
// deliberately a blocked list, not the customer-path allowed list.
func CancelBookingAdmin(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := parseBookingID(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		var input struct {
			Reason string `json:"reason" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, apperrors.NewValidation(err.Error()))
			return
		}

		reason, err := validateAdminCancelReason(input.Reason)
		if err != nil {
			response.Error(c, err)
			return
		}

		cancelled, err := services.CancelBooking(c.Request.Context(), db, logger, bookingID, services.CancelActorAdmin, reason)
		if err != nil {
			response.Error(c, err)
			return
		}

		services.NotifyBookingCancelled(c.Request.Context(), db, logger, cancelled)

		response.OK(c, cancelled.Response())
	}
}
