package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const confirmTTL = 30 * time.Second

// ConfirmStore backs the two-step arm-then-confirm flow for destructive
// operations with Redis TTL keys.
// Key format: confirm:<owner>:<kind>:<target>
type ConfirmStore struct {
	client *redis.Client
}

// NewConfirmStore creates a ConfirmStore wrapping the given Redis client.
func NewConfirmStore(client *redis.Client) *ConfirmStore {
	return &ConfirmStore{client: client}
}

// Arm records intent to perform a destructive operation and returns the
// window within which an identical request will be honored.
func (s *ConfirmStore) Arm(ctx context.Context, owner, kind, target string) (time.Duration, error) {
	if err := s.client.Set(ctx, s.key(owner, kind, target), "1", confirmTTL).Err(); err != nil {
		return 0, fmt.Errorf("confirm arm: %w", err)
	}
	return confirmTTL, nil
}

// Confirm reports whether the operation was previously armed, consuming the
// arming so every confirmation requires a fresh first step.
func (s *ConfirmStore) Confirm(ctx context.Context, owner, kind, target string) (bool, error) {
	n, err := s.client.Del(ctx, s.key(owner, kind, target)).Result()
	if err != nil {
		return false, fmt.Errorf("confirm check: %w", err)
	}
	return n > 0, nil
}

func (s *ConfirmStore) key(owner, kind, target string) string {
	return fmt.Sprintf("confirm:%s:%s:%s", owner, kind, target)
}
