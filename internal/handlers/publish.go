// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"irportal/internal/models"
	"irportal/internal/news"
)

// Internal groups endpoints for machine callers (external cron).
type Internal struct {
	newsSvc *news.Service
}

// NewInternal creates the Internal handler group.
func NewInternal(newsSvc *news.Service) *Internal {
	return &Internal{newsSvc: newsSvc}
}

// PublishScheduled handles POST /api/internal/publish-scheduled. It sweeps
// every scheduled item due now into published and reports what changed.
// Safe to call from overlapping cron jobs: the sweep is idempotent.
func (h *Internal) PublishScheduled(w http.ResponseWriter, r *http.Request) {
	published, err := h.newsSvc.PublishScheduled(r.Context(), time.Time{})
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if published == nil {
		published = []models.News{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count": len(published),
		"items": published,
	})
}
