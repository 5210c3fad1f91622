// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package notify delivers investor notifications for newly published news.
// The current transport is a webhook POST to the notification gateway; the
// news service treats delivery as best-effort and never blocks on it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"irportal/internal/models"
)

// Webhook posts published-news events to a configured URL.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a webhook notifier. Returns nil if url is empty,
// which disables notification dispatch.
func NewWebhook(url string) *Webhook {
	if url == "" {
		return nil
	}
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// event is the payload delivered to the notification gateway.
type event struct {
	Event       string     `json:"event"`
	NewsID      string     `json:"newsId"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// NewsPublished delivers one published-news event. Any non-2xx response is
// an error; the caller decides whether that matters (the news service only
// logs it).
func (w *Webhook) NewsPublished(ctx context.Context, item models.News) error {
	payload, err := json.Marshal(event{
		Event:       "news.published",
		NewsID:      item.ID.String(),
		Title:       item.Title,
		Slug:        item.Slug,
		PublishedAt: item.PublishedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification gateway returned %d", resp.StatusCode)
	}
	return nil
}
