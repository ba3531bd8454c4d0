// Package lock provides short-lived distributed locks on Redis.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/boutique/pkg/logger"
)

// ErrNotObtained is returned when another holder has the key.
var ErrNotObtained = redislock.ErrNotObtained

// RedisLocker hands out redislock locks.
type RedisLocker struct {
	client *redislock.Client
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb)}
}

// Acquire tries once to take key for ttl. The returned release func is safe
// to call after the lock has already expired.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	lk, err := l.client.Obtain(ctx, key, ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ErrNotObtained
		}
		return nil, fmt.Errorf("lock: obtain %s: %w", key, err)
	}

	return func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := lk.Release(rctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			logger.WithCtx(ctx).Warn("lock: release failed", "key", key, "error", err)
		}
	}, nil
}
