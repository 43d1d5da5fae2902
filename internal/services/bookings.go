package services

import (
	"context"
	"errors"
	"time"

	"github.com/luxride/admin-backend/internal/models"
	"github.com/luxride/admin-backend/pkg/apperrors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CancelActor selects which cancellable-status policy applies. The two
// policies are intentionally distinct: customers may only cancel from a
// positive list, admins from everything outside a blocked list.
type CancelActor string

const (
	CancelActorCustomer CancelActor = "customer"
	CancelActorAdmin    CancelActor = "admin"
)

// CancelBooking transitions a booking to cancelled. The status guard and the
// mutation are a single conditional UPDATE so a competing write cannot slip in
// between a read and a write; the loser of the race sees zero rows affected
// and gets a transition error against the then-current status.
//
// The reason must already be validated and trimmed by the caller. Releasing an
// assigned driver's availability is the driver-side application's job; this
// path only logs that expectation.
func CancelBooking(ctx context.Context, db *gorm.DB, logger *zap.Logger, bookingID uint, actor CancelActor, reason string) (*models.Booking, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"status":              models.BookingStatusCancelled,
		"cancellation_reason": reason,
		"cancelled_at":        now,
		"updated_at":          now,
	}

	query := db.WithContext(ctx).Model(&models.Booking{})
	if actor == CancelActorCustomer {
		query = query.Where("id = ? AND status IN ?", bookingID, models.CustomerCancellableStatuses())
	} else {
		query = query.Where("id = ? AND status NOT IN ?", bookingID, models.AdminCancelBlockedStatuses())
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return nil, apperrors.NewDatabase(result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the booking does not exist or its status refused the
		// transition; re-read to tell the two apart.
		var current models.Booking
		if err := db.WithContext(ctx).First(&current, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewNotFound("Booking not found")
			}
			return nil, apperrors.NewDatabase(err)
		}
		return nil, apperrors.NewInvalidTransition(models.CancelRefusalMessage(current.Status))
	}

	var booking models.Booking
	if err := db.WithContext(ctx).Preload("Customer").Preload("Driver").First(&booking, bookingID).Error; err != nil {
		return nil, apperrors.NewDatabase(err)
	}

	if err := PublishBookingChange(ctx, "UPDATE", booking.ChangePayload()); err != nil {
		logger.Warn("failed to publish booking change", zap.Uint("bookingId", booking.ID), zap.Error(err))
	}

	if booking.DriverID != nil {
		logger.Info("booking cancelled with assigned driver; availability release is handled by the driver-side app",
			zap.Uint("bookingId", booking.ID),
			zap.Uint("driverId", *booking.DriverID),
			zap.String("actor", string(actor)),
		)
	}

	return &booking, nil
}
