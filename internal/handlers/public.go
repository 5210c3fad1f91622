// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"irportal/internal/analytics"
	"irportal/internal/cache"
	"irportal/internal/markdown"
	"irportal/internal/models"
	"irportal/internal/news"
	"irportal/internal/store"
)

// publicListLimitMax caps the public feed page size; publicListLimitDefault
// matches the frontend's grid.
const (
	publicListLimitMax     = 50
	publicListLimitDefault = 12
)

// Public groups the handlers for the public portal API. Responses expose
// only published content and no admin fields. The hot list endpoint is
// cached in Redis; detail and list responses record best-effort analytics.
type Public struct {
	newsSvc   *news.Service
	projects  *store.ProjectStore
	requests  *store.RequestStore
	profile   *store.ProfileStore
	feedCache *cache.FeedCache
	analytics *analytics.Recorder
}

// NewPublic creates the Public handler group.
func NewPublic(newsSvc *news.Service, projects *store.ProjectStore, requests *store.RequestStore, profile *store.ProfileStore, feedCache *cache.FeedCache, rec *analytics.Recorder) *Public {
	return &Public{
		newsSvc:   newsSvc,
		projects:  projects,
		requests:  requests,
		profile:   profile,
		feedCache: feedCache,
		analytics: rec,
	}
}

// publicNewsItem is the reduced projection served to anonymous visitors.
type publicNewsItem struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	CoverKey    *string          `json:"coverKey,omitempty"`
	Category    *models.Category `json:"category,omitempty"`
	PublishedAt *time.Time       `json:"publishedAt"`
	BodyHTML    string           `json:"bodyHtml,omitempty"`
}

// toPublicItem strips admin-only fields and optionally renders the body.
func toPublicItem(n *models.News, withBody bool) publicNewsItem {
	item := publicNewsItem{
		ID:          n.ID,
		Title:       n.Title,
		Slug:        n.Slug,
		CoverKey:    n.CoverKey,
		Category:    n.Category,
		PublishedAt: n.PublishedAt,
	}
	if withBody {
		html, err := markdown.ToHTML(n.BodyMD)
		if err != nil {
			// Rendering failure falls back to nothing rather than leaking
			// raw markdown errors to the visitor.
			slog.Warn("markdown render failed", "news_id", n.ID, "error", err)
		} else {
			item.BodyHTML = html
		}
	}
	return item
}

// NewsList handles GET /api/news: published items only, newest first.
func (p *Public) NewsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var details []FieldError

	page, limit := 1, publicListLimitDefault
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			details = append(details, FieldError{Field: "page", Message: "must be an integer ≥ 1"})
		} else {
			page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > publicListLimitMax {
			details = append(details, FieldError{Field: "limit", Message: "must be an integer between 1 and 50"})
		} else {
			limit = n
		}
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	ctx := r.Context()
	cacheKey := fmt.Sprintf("list:%d:%d", page, limit)
	if p.feedCache != nil {
		if body, ok := p.feedCache.Get(ctx, cacheKey); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
			p.analytics.RecordListImpression()
			return
		}
	}

	published := models.NewsStatusPublished
	items, meta, err := p.newsSvc.List(ctx, news.ListParams{
		Page:   page,
		Limit:  limit,
		Status: &published,
		SortBy: "published_at",
		Order:  "desc",
	})
	if err != nil {
		writeInternalError(w, err)
		return
	}

	publicItems := make([]publicNewsItem, 0, len(items))
	for i := range items {
		publicItems = append(publicItems, toPublicItem(&items[i], false))
	}

	body, err := json.Marshal(map[string]any{"news": publicItems, "meta": meta})
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if p.feedCache != nil {
		p.feedCache.Set(ctx, cacheKey, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
	p.analytics.RecordListImpression()
}

// NewsDetail handles GET /api/news/{idOrSlug}. The parameter is tried as a
// uuid first, then as a slug, so frontend links can use either.
func (p *Public) NewsDetail(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "idOrSlug")

	var item *models.News
	var err error
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		item, err = p.newsSvc.GetPublishedByID(r.Context(), id)
	} else {
		item, err = p.newsSvc.GetPublishedBySlug(r.Context(), ref)
	}
	if err != nil {
		if errors.Is(err, news.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NEWS_NOT_FOUND", "news item not found")
		} else {
			writeInternalError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, toPublicItem(item, true))
	p.analytics.RecordView(item.ID)
}

// ProjectsList handles GET /api/projects: published projects in sort order.
func (p *Public) ProjectsList(w http.ResponseWriter, r *http.Request) {
	items, err := p.projects.ListPublished(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if items == nil {
		items = []models.Project{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": items})
}

// Profile handles GET /api/profile: every company profile section.
func (p *Public) Profile(w http.ResponseWriter, r *http.Request) {
	sections, err := p.profile.All(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": sections})
}
