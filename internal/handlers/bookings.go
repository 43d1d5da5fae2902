package handlers

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/internal/models"
	"github.com/luxride/admin-backend/internal/services"
	"github.com/luxride/admin-backend/pkg/apperrors"
	"github.com/luxride/admin-backend/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	customerReasonMinLen = 5
	customerReasonMaxLen = 200
)

// validateCustomerCancelReason enforces the customer-path reason bounds before
// any database access. Returns the trimmed reason.
func validateCustomerCancelReason(reason string) (string, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return "", apperrors.NewValidation("Cancellation reason is required")
	}
	if n := utf8.RuneCountInString(trimmed); n < customerReasonMinLen || n > customerReasonMaxLen {
		return "", apperrors.NewValidation("Cancellation reason must be between 5 and 200 characters")
	}
	return trimmed, nil
}

// validateAdminCancelReason only requires a non-empty reason after trimming.
func validateAdminCancelReason(reason string) (string, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return "", apperrors.NewValidation("Cancellation reason is required")
	}
	return trimmed, nil
}

func parseBookingID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperrors.NewValidation("Invalid booking ID")
	}
	return uint(id), nil
}

// CancelBookingCustomer handles a customer cancelling their own booking.
// Customers may only cancel bookings that are pending or matched.
func CancelBookingCustomer(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, err := parseBookingID(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		var input struct {
			CustomerUID string `json:"customerUid" binding:"required"`
			Reason      string `json:"reason" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, apperrors.NewValidation(err.Error()))
			return
		}

		reason, err := validateCustomerCancelReason(input.Reason)
		if err != nil {
			response.Error(c, err)
			return
		}

		var booking models.Booking
		if err := db.Preload("Customer").First(&booking, bookingID).Error; err != nil {
			response.Error(c, apperrors.NewNotFound("Booking not found"))
			return
		}

		if booking.Customer == nil || booking.Customer.UID != input.CustomerUID {
			response.Error(c, apperrors.NewForbidden("You can only cancel your own bookings"))
			return
		}

		cancelled, err := services.CancelBooking(c.Request.Context(), db, logger, bookingID, services.CancelActorCustomer, reason)
		if err != nil {
			response.Error(c, err)
			return
		}

		services.NotifyBookingCancelled(c.Request.Context(), db, logger, cancelled)

		response.OK(c, cancelled.Response())
	}
}
