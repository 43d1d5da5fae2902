package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCancellable(t *testing.T) {
	assert.True(t, BookingStatusPending.CustomerCancellable())
	assert.True(t, BookingStatusMatched.CustomerCancellable())

	assert.False(t, BookingStatusTripStarted.CustomerCancellable())
	assert.False(t, BookingStatusCompleted.CustomerCancellable())
	assert.False(t, BookingStatusCancelled.CustomerCancellable())

	// The customer rule is a positive list: unknown statuses are not cancellable.
	assert.False(t, BookingStatus("on_hold").CustomerCancellable())
}

func TestAdminCancellable(t *testing.T) {
	assert.True(t, BookingStatusPending.AdminCancellable())
	assert.True(t, BookingStatusMatched.AdminCancellable())

	assert.False(t, BookingStatusTripStarted.AdminCancellable())
	assert.False(t, BookingStatusCompleted.AdminCancellable())
	assert.False(t, BookingStatusCancelled.AdminCancellable())

	// The admin rule is a blocked list: unknown statuses default to cancellable.
	assert.True(t, BookingStatus("on_hold").AdminCancellable())
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusMatched.IsTerminal())
	assert.False(t, BookingStatusTripStarted.IsTerminal())
}

func TestCancelRefusalMessage(t *testing.T) {
	assert.Equal(t, "已完成的訂單無法取消", CancelRefusalMessage(BookingStatusCompleted))
	assert.Equal(t, "訂單已取消，無法重複取消", CancelRefusalMessage(BookingStatusCancelled))
	assert.Equal(t, "行程進行中的訂單無法取消", CancelRefusalMessage(BookingStatusTripStarted))
	assert.Contains(t, CancelRefusalMessage(BookingStatus("on_hold")), "on_hold")
}

func TestNewBookingNumber(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number, err := NewBookingNumber()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(number, "LR-"))
		assert.Len(t, number, 9)
		seen[number] = true
	}
	// 100 draws from a 32^6 space should not collide.
	assert.Greater(t, len(seen), 90)
}

func TestBookingChangePayloadIsTotal(t *testing.T) {
	booking := &Booking{
		BookingNumber: "LR-ABC123",
		CustomerID:    7,
		Status:        BookingStatusPending,
	}

	payload := booking.ChangePayload()

	// Every field is always present, with documented defaults for absent data.
	for _, key := range []string{
		"id", "bookingNumber", "externalId", "customerId", "driverId", "status",
		"pickupAddress", "dropoffAddress", "scheduledAt", "durationMinutes",
		"baseFare", "surcharge", "totalFare", "paymentStatus",
		"cancellationReason", "cancelledAt", "createdAt", "updatedAt",
	} {
		_, ok := payload[key]
		assert.True(t, ok, "missing key %q", key)
	}

	assert.Nil(t, payload["driverId"])
	assert.Nil(t, payload["cancelledAt"])
	assert.Equal(t, "pending", payload["status"])

	// Change payloads never carry joined data.
	_, hasCustomer := payload["customer"]
	assert.False(t, hasCustomer)
}

func TestBookingResponseIncludesJoinedData(t *testing.T) {
	driverID := uint(3)
	cancelledAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		BookingNumber:      "LR-XYZ789",
		CustomerID:         7,
		Customer:           &Customer{UID: "cust-uid-1", Name: "Alice Wang"},
		DriverID:           &driverID,
		Driver:             &Driver{Name: "Bob Chen", CarPlate: "ABC-1234"},
		Status:             BookingStatusCancelled,
		CancellationReason: "Change of plans",
		CancelledAt:        &cancelledAt,
	}

	resp := booking.Response()

	customer, ok := resp["customer"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "cust-uid-1", customer["uid"])

	driver, ok := resp["driver"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ABC-1234", driver["carPlate"])

	assert.Equal(t, "cancelled", resp["status"])
	assert.Equal(t, "Change of plans", resp["cancellationReason"])
	assert.Equal(t, "2026-05-01T10:00:00Z", resp["cancelledAt"])
}

func TestBookingResponseWithoutJoinedData(t *testing.T) {
	booking := &Booking{Status: BookingStatusPending}
	resp := booking.Response()

	assert.Nil(t, resp["customer"])
	assert.Nil(t, resp["driver"])
}

func TestBeforeCreateFillsIdentifiers(t *testing.T) {
	booking := &Booking{CustomerID: 1}
	require.NoError(t, booking.BeforeCreate(nil))

	assert.NotEmpty(t, booking.ExternalID)
	assert.True(t, strings.HasPrefix(booking.BookingNumber, "LR-"))

	// Supplied identifiers are preserved.
	fixed := &Booking{CustomerID: 1, ExternalID: "ext-1", BookingNumber: "LR-FIXED1"}
	require.NoError(t, fixed.BeforeCreate(nil))
	assert.Equal(t, "ext-1", fixed.ExternalID)
	assert.Equal(t, "LR-FIXED1", fixed.BookingNumber)
}
