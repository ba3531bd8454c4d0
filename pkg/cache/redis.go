// Package cache owns the optional Redis connection. Callers treat a nil
// client as "Redis is not configured" and fall back to in-process
// behaviour.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect dials addr and verifies the connection with a ping. On failure it
// returns a nil client together with the error.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("cache: no redis address configured")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return rdb, nil
}

// WindowCounter counts hits per key in fixed windows using INCR. The key
// expires with its window, so no cleanup is needed.
type WindowCounter struct {
	rdb    *redis.Client
	prefix string
}

func NewWindowCounter(rdb *redis.Client, prefix string) *WindowCounter {
	return &WindowCounter{rdb: rdb, prefix: prefix}
}

// Hit increments the counter for key in the current window and returns the
// new count.
func (c *WindowCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	slot := time.Now().UnixNano() / int64(window)
	k := fmt.Sprintf("%s:%s:%d", c.prefix, key, slot)

	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("cache: incr %s: %w", k, err)
	}
	return incr.Val(), nil
}
