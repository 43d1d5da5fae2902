package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// BookingFeed consumes the booking change channel and maintains an ordered
// in-memory projection of bookings, newest first. Events are applied strictly
// in receipt order; there is no de-duplication or out-of-order correction.
type BookingFeed struct {
	mu       sync.RWMutex
	bookings []map[string]interface{}
	hub      *Hub
	logger   *zap.Logger
}

func NewBookingFeed(hub *Hub, logger *zap.Logger) *BookingFeed {
	return &BookingFeed{hub: hub, logger: logger}
}

// Run subscribes to the change channel and applies events until ctx is done.
// Pub/sub reconnection is owned by the Redis client.
func (f *BookingFeed) Run(ctx context.Context) {
	pubsub := RedisClient.Subscribe(ctx, BookingChangesChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event BookingChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				f.logger.Warn("malformed booking change event", zap.Error(err))
				continue
			}
			f.Apply(event)
			if f.hub != nil {
				f.hub.Broadcast([]byte(msg.Payload))
			}
		}
	}
}

// Apply folds one change event into the projection.
//
// INSERT prepends. UPDATE merges field-by-field so that joined objects attached
// earlier (customer, driver) survive: the change payload only carries the
// booking row's own columns. DELETE removes the entry. Unknown ids on UPDATE or
// DELETE are ignored.
func (f *BookingFeed) Apply(event BookingChangeEvent) {
	id := eventID(event.Booking)
	if id == "" {
		f.logger.Warn("booking change event without id", zap.String("type", event.Type))
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch event.Type {
	case "INSERT":
		entry := make(map[string]interface{}, len(event.Booking))
		for k, v := range event.Booking {
			entry[k] = v
		}
		f.bookings = append([]map[string]interface{}{entry}, f.bookings...)

	case "UPDATE":
		for _, entry := range f.bookings {
			if eventID(entry) != id {
				continue
			}
			for k, v := range event.Booking {
				entry[k] = v
			}
			return
		}

	case "DELETE":
		for i, entry := range f.bookings {
			if eventID(entry) == id {
				f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
				return
			}
		}

	default:
		f.logger.Warn("unknown booking change type", zap.String("type", event.Type))
	}
}

// Attach stores joined customer/driver objects on a projected booking so later
// scalar updates do not lose them.
func (f *BookingFeed) Attach(id interface{}, key string, value interface{}) {
	want := fmt.Sprint(id)

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, entry := range f.bookings {
		if eventID(entry) == want {
			entry[key] = value
			return
		}
	}
}

// Snapshot returns a copy of the projection, newest first.
func (f *BookingFeed) Snapshot() []map[string]interface{} {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]map[string]interface{}, len(f.bookings))
	for i, entry := range f.bookings {
		copied := make(map[string]interface{}, len(entry))
		for k, v := range entry {
			copied[k] = v
		}
		out[i] = copied
	}
	return out
}

// Len returns the number of projected bookings.
func (f *BookingFeed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.bookings)
}

// eventID normalizes the id field, which arrives as float64 after JSON
// decoding but as uint when payloads are built in-process.
func eventID(booking map[string]interface{}) string {
	id, ok := booking["id"]
	if !ok || id == nil {
		return ""
	}
	if f, ok := id.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprint(id)
}
