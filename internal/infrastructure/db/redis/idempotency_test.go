package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewIdempotencyStore_TTL(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { _ = client.Close() })

	if s := NewIdempotencyStore(client, 0); s.ttl != defaultIdempotencyTTL {
		t.Errorf("ttl = %v, want %v", s.ttl, defaultIdempotencyTTL)
	}
	if s := NewIdempotencyStore(client, time.Minute); s.ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", s.ttl)
	}
}

func TestIdempotencyStore_Key(t *testing.T) {
	s := &IdempotencyStore{}
	if got := s.key("abc-123"); got != "idempotency:abc-123" {
		t.Errorf("key = %q", got)
	}
}

func TestStoredTaskID(t *testing.T) {
	if got := storedTaskID(pendingMarker); got != "" {
		t.Errorf("pending marker should read as in flight, got %q", got)
	}
	if got := storedTaskID("65a1f0c2b3d4e5f601234567"); got != "65a1f0c2b3d4e5f601234567" {
		t.Errorf("task id = %q", got)
	}
}

func TestIdempotencyStore_ReserveReportsConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	_, reserved, err := NewIdempotencyStore(client, time.Minute).Reserve(context.Background(), "k")
	if err == nil || reserved {
		t.Fatalf("expected an error and no reservation, got reserved=%v err=%v", reserved, err)
	}
}
