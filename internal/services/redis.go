package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const (
	// BookingChangesChannel carries booking insert/update/delete events.
	BookingChangesChannel = "bookings:changes"

	settingCacheTTL = 5 * time.Minute
)

// InitRedis initializes the Redis client and verifies connectivity.
func InitRedis(redisURL string) error {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	ctx := context.Background()
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

func settingCacheKey(key string) string {
	return "settings:" + key
}

// GetCachedSetting returns a setting's JSON value from cache, or redis.Nil.
func GetCachedSetting(ctx context.Context, key string) (string, error) {
	return RedisClient.Get(ctx, settingCacheKey(key)).Result()
}

// SetCachedSetting caches a setting's JSON value.
func SetCachedSetting(ctx context.Context, key, value string) error {
	return RedisClient.Set(ctx, settingCacheKey(key), value, settingCacheTTL).Err()
}

// InvalidateSetting drops a setting from cache after a write.
func InvalidateSetting(ctx context.Context, key string) error {
	return RedisClient.Del(ctx, settingCacheKey(key)).Err()
}

// BookingChangeEvent is the change-feed payload published after every booking
// write. Booking carries only the row's own columns, never joined data.
type BookingChangeEvent struct {
	Type    string                 `json:"type"` // INSERT, UPDATE, DELETE
	Booking map[string]interface{} `json:"booking"`
}

// PublishBookingChange fans a booking change out on the change channel.
func PublishBookingChange(ctx context.Context, eventType string, booking map[string]interface{}) error {
	event := BookingChangeEvent{Type: eventType, Booking: booking}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return RedisClient.Publish(ctx, BookingChangesChannel, data).Err()
}
