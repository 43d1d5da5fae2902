package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFeed() *BookingFeed {
	return NewBookingFeed(nil, zap.NewNop())
}

func insertEvent(id float64, fields map[string]interface{}) BookingChangeEvent {
	booking := map[string]interface{}{"id": id}
	for k, v := range fields {
		booking[k] = v
	}
	return BookingChangeEvent{Type: "INSERT", Booking: booking}
}

func TestFeedInsertPrepends(t *testing.T) {
	feed := newTestFeed()

	feed.Apply(insertEvent(1, map[string]interface{}{"status": "pending"}))
	feed.Apply(insertEvent(2, map[string]interface{}{"status": "matched"}))

	snapshot := feed.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, float64(2), snapshot[0]["id"])
	assert.Equal(t, float64(1), snapshot[1]["id"])
}

func TestFeedUpdateMergesFieldLevel(t *testing.T) {
	feed := newTestFeed()
	feed.Apply(insertEvent(1, map[string]interface{}{"status": "pending", "totalFare": 120.0}))

	// Joined data attached out of band must survive scalar updates: the change
	// feed only carries the booking row's own columns.
	feed.Attach(float64(1), "customer", map[string]interface{}{"name": "Alice Wang"})

	feed.Apply(BookingChangeEvent{
		Type:    "UPDATE",
		Booking: map[string]interface{}{"id": float64(1), "status": "cancelled"},
	})

	snapshot := feed.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "cancelled", snapshot[0]["status"])
	assert.Equal(t, 120.0, snapshot[0]["totalFare"])

	customer, ok := snapshot[0]["customer"].(map[string]interface{})
	require.True(t, ok, "customer attachment lost on update")
	assert.Equal(t, "Alice Wang", customer["name"])
}

func TestFeedDeleteRemoves(t *testing.T) {
	feed := newTestFeed()
	feed.Apply(insertEvent(1, nil))
	feed.Apply(insertEvent(2, nil))

	feed.Apply(BookingChangeEvent{Type: "DELETE", Booking: map[string]interface{}{"id": float64(1)}})

	snapshot := feed.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, float64(2), snapshot[0]["id"])
}

func TestFeedIgnoresUnknownIDs(t *testing.T) {
	feed := newTestFeed()
	feed.Apply(insertEvent(1, nil))

	feed.Apply(BookingChangeEvent{Type: "UPDATE", Booking: map[string]interface{}{"id": float64(99), "status": "cancelled"}})
	feed.Apply(BookingChangeEvent{Type: "DELETE", Booking: map[string]interface{}{"id": float64(99)}})

	assert.Equal(t, 1, feed.Len())
}

func TestFeedIgnoresMalformedEvents(t *testing.T) {
	feed := newTestFeed()

	feed.Apply(BookingChangeEvent{Type: "INSERT", Booking: map[string]interface{}{}})
	feed.Apply(BookingChangeEvent{Type: "UNKNOWN", Booking: map[string]interface{}{"id": float64(1)}})

	assert.Equal(t, 0, feed.Len())
}

func TestFeedIDNormalization(t *testing.T) {
	feed := newTestFeed()

	// Payloads built in-process carry uint ids, decoded events carry float64;
	// both must address the same entry.
	feed.Apply(BookingChangeEvent{Type: "INSERT", Booking: map[string]interface{}{"id": uint(5), "status": "pending"}})
	feed.Apply(BookingChangeEvent{Type: "UPDATE", Booking: map[string]interface{}{"id": float64(5), "status": "matched"}})

	snapshot := feed.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "matched", snapshot[0]["status"])
}

func TestFeedSnapshotIsACopy(t *testing.T) {
	feed := newTestFeed()
	feed.Apply(insertEvent(1, map[string]interface{}{"status": "pending"}))

	snapshot := feed.Snapshot()
	snapshot[0]["status"] = "mutated"

	fresh := feed.Snapshot()
	assert.Equal(t, "pending", fresh[0]["status"])
}
