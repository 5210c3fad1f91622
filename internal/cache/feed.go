// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// feed.go provides a Redis-backed cache for public news feed responses.
// The published-news list is by far the hottest endpoint; caching the
// serialized JSON skips the DB query and markdown rendering entirely.
// Cache failures degrade to a normal DB read, never to an error.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// feedKeyPrefix namespaces feed cache keys.
	feedKeyPrefix = "feed:news:"

	// DefaultFeedTTL is how long a cached feed page stays valid. Kept short
	// so a missed invalidation heals quickly.
	DefaultFeedTTL = 2 * time.Minute
)

// FeedCache caches serialized public feed responses in Redis.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeedCache creates a feed cache backed by the given Redis client.
func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	if ttl == 0 {
		ttl = DefaultFeedTTL
	}
	return &FeedCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body. Returns false on miss or error.
func (fc *FeedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := fc.client.Get(ctx, feedKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("feed cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores a serialized response body with the configured TTL.
func (fc *FeedCache) Set(ctx context.Context, key string, body []byte) {
	if err := fc.client.Set(ctx, feedKeyPrefix+key, body, fc.ttl).Err(); err != nil {
		slog.Warn("feed cache set error", "key", key, "error", err)
	}
}

// InvalidateNewsFeed drops every cached feed page. Called after any news
// mutation: the page boundaries shift, so per-key invalidation is pointless.
func (fc *FeedCache) InvalidateNewsFeed(ctx context.Context) {
	var cursor uint64
	for {
		keys, next, err := fc.client.Scan(ctx, cursor, feedKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("feed cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := fc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("feed cache delete error", "error", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
