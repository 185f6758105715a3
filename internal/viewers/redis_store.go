package viewers

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jason-czar/Sportstreams/internal/config"
)

// Redis key pattern:
// viewers:event:{event_id}   SET<viewer_id> - clients watching the event

// RedisPresenceStore is a Redis-backed PresenceStore, for deployments where
// several instances serve websocket connections for the same events.
type RedisPresenceStore struct {
	client *redis.Client
}

func NewRedisPresenceStore(cfg config.RedisConfig) (*RedisPresenceStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisPresenceStore{client: client}, nil
}

func eventKey(eventID string) string {
	return fmt.Sprintf("viewers:event:%s", eventID)
}

func (s *RedisPresenceStore) Add(ctx context.Context, eventID, viewerID string) error {
	return s.client.SAdd(ctx, eventKey(eventID), viewerID).Err()
}

func (s *RedisPresenceStore) Remove(ctx context.Context, eventID, viewerID string) error {
	return s.client.SRem(ctx, eventKey(eventID), viewerID).Err()
}

func (s *RedisPresenceStore) Count(ctx context.Context, eventID string) (int64, error) {
	return s.client.SCard(ctx, eventKey(eventID)).Result()
}

func (s *RedisPresenceStore) Close() error {
	return s.client.Close()
}
