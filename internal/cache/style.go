// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// styleKeyPrefix is the Valkey key prefix for cached stylesheets.
	styleKeyPrefix = "theme:css:"

	// DefaultStyleTTL is how long a generated stylesheet stays cached.
	DefaultStyleTTL = 10 * time.Minute
)

// StyleCache stores generated theme stylesheets in Valkey. Errors are
// logged and treated as misses so a cache outage never fails a request.
type StyleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStyleCache creates a stylesheet cache backed by the given client.
func NewStyleCache(client *redis.Client, ttl time.Duration) *StyleCache {
	if ttl == 0 {
		ttl = DefaultStyleTTL
	}
	return &StyleCache{client: client, ttl: ttl}
}

// Get returns the cached stylesheet for key.
func (c *StyleCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, styleKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		slog.Warn("style cache get error", "key", key, "error", err)
		return "", false
	}
	return val, true
}

// Set stores css under key with the configured TTL.
func (c *StyleCache) Set(ctx context.Context, key, css string) {
	if err := c.client.Set(ctx, styleKeyPrefix+key, css, c.ttl).Err(); err != nil {
		slog.Warn("style cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached stylesheet. Any theme mutation can
// change what the active stylesheet is.
func (c *StyleCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, styleKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("style cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("style cache delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("style cache cleared", "deleted", deleted)
	}
}
