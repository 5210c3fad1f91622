// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package analytics records best-effort impression and view counters for
// public news responses. Recording runs off the request path; a failure is
// logged and never affects the response already sent.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	viewKeyPrefix   = "views:news:"
	impressionsKey  = "impressions:news:list"
	recorderTimeout = 3 * time.Second
)

// Recorder increments counters in Redis.
type Recorder struct {
	client *redis.Client
}

// NewRecorder creates a Recorder backed by the given Redis client.
func NewRecorder(client *redis.Client) *Recorder {
	return &Recorder{client: client}
}

// RecordView asynchronously increments the view counter for a news item.
// Fire-and-forget: returns immediately.
func (r *Recorder) RecordView(id uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recorderTimeout)
		defer cancel()
		if err := r.client.Incr(ctx, viewKeyPrefix+id.String()).Err(); err != nil {
			slog.Warn("view recording failed", "news_id", id, "error", err)
		}
	}()
}

// RecordListImpression asynchronously increments the feed impression counter.
func (r *Recorder) RecordListImpression() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recorderTimeout)
		defer cancel()
		if err := r.client.Incr(ctx, impressionsKey).Err(); err != nil {
			slog.Warn("impression recording failed", "error", err)
		}
	}()
}

// Views returns the recorded view count for a news item.
func (r *Recorder) Views(ctx context.Context, id uuid.UUID) (int64, error) {
	n, err := r.client.Get(ctx, viewKeyPrefix+id.String()).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read view count: %w", err)
	}
	return n, nil
}
