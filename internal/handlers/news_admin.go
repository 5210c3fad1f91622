// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"irportal/internal/middleware"
	"irportal/internal/models"
	"irportal/internal/news"
	"irportal/internal/slug"
)

// listResponse is the envelope for paginated news listings.
type listResponse struct {
	News []models.News `json:"news"`
	Meta news.PageMeta `json:"meta"`
}

// parseListQuery validates the admin listing query parameters.
func parseListQuery(r *http.Request) (news.ListParams, []FieldError) {
	q := r.URL.Query()
	var details []FieldError

	p := news.ListParams{
		Page:   1,
		Limit:  20,
		Search: q.Get("search"),
		SortBy: "created_at",
		Order:  "desc",
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			details = append(details, FieldError{Field: "page", Message: "must be an integer ≥ 1"})
		} else {
			p.Page = n
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			details = append(details, FieldError{Field: "limit", Message: "must be an integer between 1 and 100"})
		} else {
			p.Limit = n
		}
	}
	if v := q.Get("status"); v != "" {
		st := models.NewsStatus(v)
		if !models.ValidNewsStatus(st) {
			details = append(details, FieldError{Field: "status", Message: "must be one of: draft, scheduled, published"})
		} else {
			p.Status = &st
		}
	}
	if v := q.Get("categoryId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			details = append(details, FieldError{Field: "categoryId", Message: "must be a valid uuid"})
		} else {
			p.CategoryID = &id
		}
	}
	if v := q.Get("sortBy"); v != "" {
		switch v {
		case "created_at", "published_at", "scheduled_at":
			p.SortBy = v
		default:
			details = append(details, FieldError{Field: "sortBy", Message: "must be one of: created_at, published_at, scheduled_at"})
		}
	}
	if v := q.Get("order"); v != "" {
		switch v {
		case "asc", "desc":
			p.Order = v
		default:
			details = append(details, FieldError{Field: "order", Message: "must be asc or desc"})
		}
	}

	return p, details
}

// NewsList handles GET /api/admin/news.
func (a *Admin) NewsList(w http.ResponseWriter, r *http.Request) {
	params, details := parseListQuery(r)
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	items, meta, err := a.newsSvc.List(r.Context(), params)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if items == nil {
		items = []models.News{}
	}
	writeJSON(w, http.StatusOK, listResponse{News: items, Meta: meta})
}

// createNewsRequest is the POST /api/admin/news body.
type createNewsRequest struct {
	Title       string            `json:"title" validate:"required,min=3,max=200"`
	Slug        string            `json:"slug" validate:"required"`
	BodyMD      string            `json:"bodyMd" validate:"required"`
	CoverKey    *string           `json:"coverKey"`
	CategoryID  *uuid.UUID        `json:"categoryId"`
	Status      models.NewsStatus `json:"status" validate:"omitempty,oneof=draft scheduled published"`
	ScheduledAt *time.Time        `json:"scheduledAt"`
	PublishedAt *time.Time        `json:"publishedAt"`
}

// lifecycleDetails checks the status/timestamp presence rules shared by
// create and update: scheduled requires scheduledAt, published requires
// publishedAt. No adjacency rule beyond that.
func lifecycleDetails(status models.NewsStatus, scheduledAt, publishedAt *time.Time) []FieldError {
	var details []FieldError
	if status == models.NewsStatusScheduled && scheduledAt == nil {
		details = append(details, FieldError{Field: "scheduledAt", Message: "is required when status is scheduled"})
	}
	if status == models.NewsStatusPublished && publishedAt == nil {
		details = append(details, FieldError{Field: "publishedAt", Message: "is required when status is published"})
	}
	return details
}

// NewsCreate handles POST /api/admin/news.
func (a *Admin) NewsCreate(w http.ResponseWriter, r *http.Request) {
	var req createNewsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	details := validateStruct(req)
	if req.Slug != "" && !slug.Valid(req.Slug) {
		details = append(details, FieldError{Field: "slug", Message: "must be 3-120 lowercase alphanumeric characters or hyphens"})
	}
	details = append(details, lifecycleDetails(req.Status, req.ScheduledAt, req.PublishedAt)...)
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	// Authorship comes from the session; anonymous/system items keep nil.
	var authorID *uuid.UUID
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		authorID = &sess.UserID
	}

	item, err := a.newsSvc.Create(r.Context(), news.CreateParams{
		Title:       req.Title,
		Slug:        req.Slug,
		BodyMD:      req.BodyMD,
		CoverKey:    req.CoverKey,
		CategoryID:  req.CategoryID,
		AuthorID:    authorID,
		Status:      req.Status,
		ScheduledAt: req.ScheduledAt,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		writeNewsError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// newsID extracts and validates the {id} route parameter.
func newsID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeValidationError(w, []FieldError{{Field: "id", Message: "must be a valid uuid"}})
		return uuid.Nil, false
	}
	return id, true
}

// NewsGet handles GET /api/admin/news/{id}.
func (a *Admin) NewsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := newsID(w, r)
	if !ok {
		return
	}

	item, err := a.newsSvc.GetByID(r.Context(), id)
	if err != nil {
		writeNewsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// validatePatch applies the content rules to whichever fields the patch
// sets. An empty patch is rejected outright.
func validatePatch(p *models.NewsPatch) []FieldError {
	if p.Empty() {
		return []FieldError{{Field: "body", Message: "at least one field must be provided"}}
	}

	var details []FieldError
	if p.Title.Set {
		if p.Title.Null || len(p.Title.Value) < 3 || len(p.Title.Value) > 200 {
			details = append(details, FieldError{Field: "title", Message: "must be 3-200 characters"})
		}
	}
	if p.Slug.Set {
		if p.Slug.Null || !slug.Valid(p.Slug.Value) {
			details = append(details, FieldError{Field: "slug", Message: "must be 3-120 lowercase alphanumeric characters or hyphens"})
		}
	}
	if p.BodyMD.Set && (p.BodyMD.Null || p.BodyMD.Value == "") {
		details = append(details, FieldError{Field: "bodyMd", Message: "must not be empty"})
	}
	if p.Status.Set {
		if p.Status.Null || !models.ValidNewsStatus(p.Status.Value) {
			details = append(details, FieldError{Field: "status", Message: "must be one of: draft, scheduled, published"})
		} else {
			// A timestamp counts as present only when the patch sets it
			// to a value, not when it is absent or explicitly null.
			var schedAt, pubAt *time.Time
			if p.ScheduledAt.Set {
				schedAt = p.ScheduledAt.Ptr()
			}
			if p.PublishedAt.Set {
				pubAt = p.PublishedAt.Ptr()
			}
			details = append(details, lifecycleDetails(p.Status.Value, schedAt, pubAt)...)
		}
	}
	return details
}

// NewsUpdate handles PATCH /api/admin/news/{id}. Only fields present in the
// payload are touched; an explicit null clears a nullable field.
func (a *Admin) NewsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := newsID(w, r)
	if !ok {
		return
	}

	var patch models.NewsPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	if details := validatePatch(&patch); len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	item, err := a.newsSvc.Update(r.Context(), id, &patch)
	if err != nil {
		writeNewsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// NewsDelete handles DELETE /api/admin/news/{id}. The cover object, if
// any, is removed from storage best-effort after the row is gone.
func (a *Admin) NewsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := newsID(w, r)
	if !ok {
		return
	}

	item, err := a.newsSvc.GetByID(r.Context(), id)
	if err != nil {
		writeNewsError(w, err)
		return
	}

	if err := a.newsSvc.Delete(r.Context(), id); err != nil {
		writeNewsError(w, err)
		return
	}

	if a.storage != nil && item.CoverKey != nil {
		key := *item.CoverKey
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := a.storage.Delete(ctx, key); err != nil {
				slog.Warn("cover delete failed", "key", key, "error", err)
			}
		}()
	}

	w.WriteHeader(http.StatusNoContent)
}

// NewsStats handles GET /api/admin/news/{id}/stats: the recorded view count.
func (a *Admin) NewsStats(w http.ResponseWriter, r *http.Request) {
	id, ok := newsID(w, r)
	if !ok {
		return
	}

	// Confirm the item exists so stats for unknown ids 404 consistently.
	if _, err := a.newsSvc.GetByID(r.Context(), id); err != nil {
		writeNewsError(w, err)
		return
	}

	views, err := a.analytics.Views(r.Context(), id)
	if err != nil {
		writeInternalError(w, fmt.Errorf("news stats: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"newsId": id, "views": views})
}
