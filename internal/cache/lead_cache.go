// Package cache keeps a short-lived copy of the lead listing so the
// campaign editor does not hit the lead webhook on every page load.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const leadKey = "marketing-ops:leads:raw"

// Loader fetches the raw listing on a cache miss.
type Loader func(ctx context.Context) ([]byte, error)

// LeadCache is a read-through cache. A nil client turns it into a
// pass-through, and Redis errors fall back to the loader.
type LeadCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeadCache(client *redis.Client, ttl time.Duration) *LeadCache {
	return &LeadCache{client: client, ttl: ttl}
}

// NewRedisClient returns nil when addr is empty.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

func (c *LeadCache) Get(ctx context.Context, load Loader) ([]byte, error) {
	if c == nil || c.client == nil {
		return load(ctx)
	}

	data, err := c.client.Get(ctx, leadKey).Bytes()
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, redis.Nil) {
		slog.Warn("lead cache read failed", "error", err)
	}

	data, err = load(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, leadKey, data, c.ttl).Err(); err != nil {
		slog.Warn("lead cache write failed", "error", err)
	}
	return data, nil
}

// Invalidate drops the cached listing, e.g. after a new leads flow run.
func (c *LeadCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, leadKey).Err(); err != nil {
		slog.Warn("lead cache invalidate failed", "error", err)
	}
}
