package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	// reservationTTL bounds how long a crashed create can hold a key.
	reservationTTL = 30 * time.Second
	pendingMarker  = "pending"
)

// IdempotencyStore remembers which task an Idempotency-Key created.
// Key format: idempotency:<key>, holding either "pending" or the task id.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl falls back to 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key with SETNX. The first caller wins; later callers get
// the stored task id, or "" while the winner is still creating.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (string, bool, error) {
	ok, err := s.client.SetNX(ctx, s.key(key), pendingMarker, reservationTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return "", true, nil
	}

	id, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; report it as in flight.
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	return storedTaskID(id), false, nil
}

// Remember binds key to taskID for the full ttl.
func (s *IdempotencyStore) Remember(ctx context.Context, key, taskID string) error {
	if err := s.client.Set(ctx, s.key(key), taskID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

// Release deletes key so a retry can create the task.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(k string) string {
	return "idempotency:" + k
}

func storedTaskID(v string) string {
	if v == pendingMarker {
		return ""
	}
	return v
}
