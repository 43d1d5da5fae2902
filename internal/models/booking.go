package models

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending     BookingStatus = "pending"
	BookingStatusMatched     BookingStatus = "matched"
	BookingStatusTripStarted BookingStatus = "trip_started"
	BookingStatusCompleted   BookingStatus = "completed"
	BookingStatusCancelled   BookingStatus = "cancelled"
)

// CustomerCancellableStatuses is the positive list of statuses a customer may
// cancel from. Admins use the negative rule below instead; the two policies are
// intentionally separate and must not be merged.
func CustomerCancellableStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusPending, BookingStatusMatched}
}

// AdminCancelBlockedStatuses lists the statuses an admin may NOT cancel from.
// Admins may cancel anything else, including statuses added in the future.
func AdminCancelBlockedStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusCancelled, BookingStatusCompleted, BookingStatusTripStarted}
}

// CustomerCancellable reports whether a customer may cancel from this status.
func (s BookingStatus) CustomerCancellable() bool {
	for _, allowed := range CustomerCancellableStatuses() {
		if s == allowed {
			return true
		}
	}
	return false
}

// AdminCancellable reports whether an admin may cancel from this status.
func (s BookingStatus) AdminCancellable() bool {
	for _, blocked := range AdminCancelBlockedStatuses() {
		if s == blocked {
			return false
		}
	}
	return true
}

// IsTerminal reports whether no further transition is permitted from this status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CancelRefusalMessage returns the user-facing message for a cancel attempt
// refused because of the booking's current status.
func CancelRefusalMessage(s BookingStatus) string {
	switch s {
	case BookingStatusCompleted:
		return "已完成的訂單無法取消"
	case BookingStatusCancelled:
		return "訂單已取消，無法重複取消"
	case BookingStatusTripStarted:
		return "行程進行中的訂單無法取消"
	default:
		return fmt.Sprintf("訂單狀態 %s 無法取消", s)
	}
}

type Booking struct {
	gorm.Model
	BookingNumber      string        `json:"bookingNumber" gorm:"uniqueIndex;not null"`
	ExternalID         string        `json:"externalId" gorm:"uniqueIndex;not null"`
	CustomerID         uint          `json:"customerId" gorm:"not null;index"`
	Customer           *Customer     `json:"customer,omitempty"`
	DriverID           *uint         `json:"driverId" gorm:"index"`
	Driver             *Driver       `json:"driver,omitempty"`
	Status             BookingStatus `json:"status" gorm:"not null;default:'pending';index"`
	PickupAddress      string        `json:"pickupAddress" gorm:"not null"`
	DropoffAddress     string        `json:"dropoffAddress" gorm:"not null"`
	ScheduledAt        time.Time     `json:"scheduledAt" gorm:"not null;index"`
	DurationMinutes    int           `json:"durationMinutes"`
	BaseFare           float64       `json:"baseFare"`
	Surcharge          float64       `json:"surcharge"`
	TotalFare          float64       `json:"totalFare"`
	PaymentStatus      string        `json:"paymentStatus" gorm:"default:'unpaid'"`
	CancellationReason string        `json:"cancellationReason"`
	CancelledAt        *time.Time    `json:"cancelledAt"`
}

func (Booking) TableName() string {
	return "bookings"
}

const bookingNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewBookingNumber generates a human-readable booking number like "LR-7KQ2MF".
func NewBookingNumber() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = bookingNumberChars[int(buf[i])%len(bookingNumberChars)]
	}
	return "LR-" + string(buf), nil
}

// BeforeCreate fills in the external identifier and booking number when the
// creating flow did not supply them.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ExternalID == "" {
		b.ExternalID = uuid.NewString()
	}
	if b.BookingNumber == "" {
		number, err := NewBookingNumber()
		if err != nil {
			return err
		}
		b.BookingNumber = number
	}
	return nil
}

// Response projects a booking into the camel-case API shape. The field list is
// total: every key is always present, with zero-value defaults for missing
// source fields, so clients never branch on key existence.
func (b *Booking) Response() map[string]interface{} {
	resp := b.ChangePayload()

	resp["customer"] = nil
	if b.Customer != nil {
		resp["customer"] = b.Customer.Response()
	}
	resp["driver"] = nil
	if b.Driver != nil {
		resp["driver"] = b.Driver.Response()
	}
	return resp
}

// ChangePayload projects only the booking's own columns, the shape carried by
// change events. Joined customer/driver data is never part of a change payload.
func (b *Booking) ChangePayload() map[string]interface{} {
	var cancelledAt interface{}
	if b.CancelledAt != nil {
		cancelledAt = b.CancelledAt.UTC().Format(time.RFC3339)
	}

	var driverID interface{}
	if b.DriverID != nil {
		driverID = *b.DriverID
	}

	return map[string]interface{}{
		"id":                 b.ID,
		"bookingNumber":      b.BookingNumber,
		"externalId":         b.ExternalID,
		"customerId":         b.CustomerID,
		"driverId":           driverID,
		"status":             string(b.Status),
		"pickupAddress":      b.PickupAddress,
		"dropoffAddress":     b.DropoffAddress,
		"scheduledAt":        b.ScheduledAt.UTC().Format(time.RFC3339),
		"durationMinutes":    b.DurationMinutes,
		"baseFare":           b.BaseFare,
		"surcharge":          b.Surcharge,
		"totalFare":          b.TotalFare,
		"paymentStatus":      b.PaymentStatus,
		"cancellationReason": b.CancellationReason,
		"cancelledAt":        cancelledAt,
		"createdAt":          b.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":          b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
