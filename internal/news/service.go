// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package news implements the news publication and scheduling subsystem:
// lifecycle transitions (draft → scheduled → published), slug uniqueness,
// paginated listing, and the batch publish-scheduled sweep.
package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"irportal/internal/models"
	"irportal/internal/store"
)

// Notifier delivers an investor notification for a newly published item.
// Delivery is best-effort: the publish sweep never waits on it or fails
// because of it.
type Notifier interface {
	NewsPublished(ctx context.Context, item models.News) error
}

// FeedInvalidator drops cached public feed responses after a mutation.
type FeedInvalidator interface {
	InvalidateNewsFeed(ctx context.Context)
}

// Service owns the news business operations. The storage handle and side
// channels are injected by the composition root; the service holds no
// ambient globals and no in-process state.
type Service struct {
	store    *store.NewsStore
	notifier Notifier
	feed     FeedInvalidator
}

// NewService creates a news service. notifier and feed may be nil, which
// disables the corresponding side effects.
func NewService(st *store.NewsStore, notifier Notifier, feed FeedInvalidator) *Service {
	return &Service{store: st, notifier: notifier, feed: feed}
}

// CreateParams carries the validated content fields for a new item.
// Status defaults to draft when empty. The presence rules between status
// and the timestamps are enforced at the validation edge, not here.
type CreateParams struct {
	Title       string
	Slug        string
	BodyMD      string
	CoverKey    *string
	CategoryID  *uuid.UUID
	AuthorID    *uuid.UUID
	Status      models.NewsStatus
	ScheduledAt *time.Time
	PublishedAt *time.Time
}

// Create persists a new news item and returns it with joins resolved.
// A slug collision is reported as ErrSlugExists, derived from the storage
// constraint so concurrent creates resolve deterministically.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.News, error) {
	status := p.Status
	if status == "" {
		status = models.NewsStatusDraft
	}

	item, err := s.store.Create(ctx, &models.News{
		Title:       p.Title,
		Slug:        p.Slug,
		BodyMD:      p.BodyMD,
		CoverKey:    p.CoverKey,
		CategoryID:  p.CategoryID,
		AuthorID:    p.AuthorID,
		Status:      status,
		ScheduledAt: p.ScheduledAt,
		PublishedAt: p.PublishedAt,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, fmt.Errorf("create news: %w", err)
	}

	s.invalidateFeed(ctx)
	return item, nil
}

// ListParams describes a listing request after edge validation: page ≥ 1
// and limit within bounds are the caller's responsibility.
type ListParams struct {
	Page       int
	Limit      int
	Status     *models.NewsStatus
	CategoryID *uuid.UUID
	Search     string
	SortBy     string
	Order      string
}

// List returns one page of news items and the pagination metadata.
func (s *Service) List(ctx context.Context, p ListParams) ([]models.News, PageMeta, error) {
	items, total, err := s.store.List(ctx, store.NewsFilter{
		Status:     p.Status,
		CategoryID: p.CategoryID,
		Search:     p.Search,
		SortBy:     p.SortBy,
		Order:      p.Order,
		Limit:      p.Limit,
		Offset:     (p.Page - 1) * p.Limit,
	})
	if err != nil {
		return nil, PageMeta{}, fmt.Errorf("list news: %w", err)
	}
	return items, NewPageMeta(p.Page, p.Limit, total), nil
}

// GetByID returns a single item or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.News, error) {
	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get news: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// GetPublishedByID returns a published item or ErrNotFound. Drafts and
// scheduled items are invisible here.
func (s *Service) GetPublishedByID(ctx context.Context, id uuid.UUID) (*models.News, error) {
	item, err := s.store.FindPublishedByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get published news: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// GetPublishedBySlug returns a published item by slug or ErrNotFound.
func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (*models.News, error) {
	item, err := s.store.FindPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get published news: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// Update applies a sparse patch: only fields the caller set are written, a
// field set to null is cleared. The validation edge rejects empty patches
// before this is reached. No transition-adjacency rule is enforced — an
// update may move a published item back to draft, or a draft straight to
// published.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch *models.NewsPatch) (*models.News, error) {
	item, err := s.store.Update(ctx, id, patch)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, fmt.Errorf("update news: %w", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}

	s.invalidateFeed(ctx)
	return item, nil
}

// Delete hard-deletes an item or reports ErrNotFound.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete news: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.invalidateFeed(ctx)
	return nil
}

// PublishScheduled transitions every scheduled item due at or before asOf
// to published in one batched update, then dispatches an investor
// notification per item. A zero asOf means "now". Safe to re-invoke: items
// already published no longer match.
func (s *Service) PublishScheduled(ctx context.Context, asOf time.Time) ([]models.News, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	published, err := s.store.PublishDue(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("publish scheduled news: %w", err)
	}
	if len(published) == 0 {
		return []models.News{}, nil
	}

	slog.Info("scheduled news published", "count", len(published), "as_of", asOf)
	s.invalidateFeed(ctx)

	// Notification is a best-effort side channel, decoupled from the
	// publish result. Each dispatch runs on its own goroutine with a
	// fresh context so a slow or failing receiver cannot affect the sweep.
	if s.notifier != nil {
		for _, item := range published {
			go func(n models.News) {
				if err := s.notifier.NewsPublished(context.Background(), n); err != nil {
					slog.Warn("investor notification failed",
						"news_id", n.ID, "slug", n.Slug, "error", err)
				}
			}(item)
		}
	}

	return published, nil
}

func (s *Service) invalidateFeed(ctx context.Context) {
	if s.feed != nil {
		s.feed.InvalidateNewsFeed(ctx)
	}
}
