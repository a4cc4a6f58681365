package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ThrottleStore limits how often an action may run for a given key.
type ThrottleStore interface {
	Allow(ctx context.Context, key string, interval time.Duration) (bool, error)
}

// RedisThrottleStore implements ThrottleStore backed by Redis. The first
// caller inside the interval wins; later calls are suppressed until the key
// expires.
type RedisThrottleStore struct {
	client redis.UniversalClient
	prefix string
}

var _ ThrottleStore = (*RedisThrottleStore)(nil)

// NewRedisThrottleStore constructs a Redis-backed throttle store.
func NewRedisThrottleStore(client redis.UniversalClient) *RedisThrottleStore {
	return &RedisThrottleStore{client: client, prefix: "web:throttle:"}
}

// Allow reports whether the action may run now and records the attempt.
func (s *RedisThrottleStore) Allow(ctx context.Context, key string, interval time.Duration) (bool, error) {
	// Keys are hashed so raw email addresses never land in Redis.
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(key))))
	redisKey := s.prefix + hex.EncodeToString(sum[:])

	ok, err := s.client.SetNX(ctx, redisKey, time.Now().Unix(), interval).Result()
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return ok, nil
}
