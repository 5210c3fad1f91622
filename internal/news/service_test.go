// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// service_test.go exercises the news service against a real database.
// Tests are skipped when PostgreSQL is unavailable.
package news

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"irportal/internal/database"
	"irportal/internal/models"
	"irportal/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "irportal")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "irportal")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

func cleanNews(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM news WHERE slug = $1", slug)
	}
}

// captureNotifier records published items it was handed.
type captureNotifier struct {
	mu    sync.Mutex
	items []models.News
	done  chan struct{}
}

func (c *captureNotifier) NewsPublished(_ context.Context, item models.News) error {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
	select {
	case c.done <- struct{}{}:
	default:
	}
	return nil
}

// countInvalidator counts feed invalidations.
type countInvalidator struct {
	mu sync.Mutex
	n  int
}

func (c *countInvalidator) InvalidateNewsFeed(context.Context) {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *countInvalidator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func TestServiceCreateDefaultsToDraft(t *testing.T) {
	db := testDB(t)
	feed := &countInvalidator{}
	svc := NewService(store.NewNewsStore(db), nil, feed)
	ctx := context.Background()

	slug := "svc-draft-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanNews(t, db, slug) })

	created, err := svc.Create(ctx, CreateParams{
		Title:  "Draft by default",
		Slug:   slug,
		BodyMD: "body",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != models.NewsStatusDraft {
		t.Errorf("status: got %q, want draft", created.Status)
	}
	if feed.count() == 0 {
		t.Error("expected feed invalidation after create")
	}
}

func TestServiceCreateSlugConflict(t *testing.T) {
	db := testDB(t)
	svc := NewService(store.NewNewsStore(db), nil, nil)
	ctx := context.Background()

	slug := "svc-conflict-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanNews(t, db, slug) })

	params := CreateParams{Title: "First", Slug: slug, BodyMD: "body"}
	if _, err := svc.Create(ctx, params); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := svc.Create(ctx, params)
	if !errors.Is(err, ErrSlugExists) {
		t.Errorf("expected ErrSlugExists, got: %v", err)
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	db := testDB(t)
	svc := NewService(store.NewNewsStore(db), nil, nil)

	_, err := svc.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestServiceUpdateSlugConflict(t *testing.T) {
	db := testDB(t)
	svc := NewService(store.NewNewsStore(db), nil, nil)
	ctx := context.Background()

	slugA := "svc-upd-a-" + uuid.NewString()[:8]
	slugB := "svc-upd-b-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanNews(t, db, slugA, slugB) })

	if _, err := svc.Create(ctx, CreateParams{Title: "A", Slug: slugA, BodyMD: "a"}); err != nil {
		t.Fatalf("Create A: %v", err)
	}
	b, err := svc.Create(ctx, CreateParams{Title: "B", Slug: slugB, BodyMD: "b"})
	if err != nil {
		t.Fatalf("Create B: %v", err)
	}

	var patch models.NewsPatch
	patch.Slug = models.Field[string]{Set: true, Value: slugA}
	_, err = svc.Update(ctx, b.ID, &patch)
	if !errors.Is(err, ErrSlugExists) {
		t.Errorf("expected ErrSlugExists, got: %v", err)
	}
}

func TestServiceDeleteNotFound(t *testing.T) {
	db := testDB(t)
	svc := NewService(store.NewNewsStore(db), nil, nil)

	err := svc.Delete(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestServicePublishScheduledNotifies(t *testing.T) {
	db := testDB(t)
	notifier := &captureNotifier{done: make(chan struct{}, 1)}
	feed := &countInvalidator{}
	svc := NewService(store.NewNewsStore(db), notifier, feed)
	ctx := context.Background()

	slug := "svc-sweep-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanNews(t, db, slug) })

	past := time.Now().UTC().Add(-time.Minute)
	if _, err := svc.Create(ctx, CreateParams{
		Title:       "Due item",
		Slug:        slug,
		BodyMD:      "body",
		Status:      models.NewsStatusScheduled,
		ScheduledAt: &past,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	published, err := svc.PublishScheduled(ctx, time.Time{})
	if err != nil {
		t.Fatalf("PublishScheduled: %v", err)
	}

	var found bool
	for _, n := range published {
		if n.Slug == slug {
			found = true
		}
	}
	if !found {
		t.Fatal("due item missing from sweep result")
	}

	// Notification is dispatched asynchronously.
	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}

	notifier.mu.Lock()
	var notified bool
	for _, n := range notifier.items {
		if n.Slug == slug {
			notified = true
		}
	}
	notifier.mu.Unlock()
	if !notified {
		t.Error("notifier did not receive the published item")
	}

	if feed.count() == 0 {
		t.Error("expected feed invalidation after sweep")
	}
}

func TestServicePublishScheduledEmptySweep(t *testing.T) {
	db := testDB(t)
	svc := NewService(store.NewNewsStore(db), nil, nil)

	// A sweep an hour in the past cannot match rows created by other tests.
	published, err := svc.PublishScheduled(context.Background(), time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("PublishScheduled: %v", err)
	}
	if published == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(published) != 0 {
		t.Errorf("expected no published items, got %d", len(published))
	}
}
