// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"irportal/internal/models"
	"irportal/internal/news"
	"irportal/internal/store"
)

type createRequestRequest struct {
	Type     string  `json:"type" validate:"required"`
	FullName string  `json:"fullName" validate:"required,min=2,max=120"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=40"`
	Message  string  `json:"message" validate:"required,min=10,max=5000"`
}

// RequestCreate handles POST /api/requests, the public submission endpoint.
// It sits behind the rate limiter; everything else is plain validation.
func (p *Public) RequestCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	details := validateStruct(req)
	if req.Type != "" && !models.ValidRequestType(models.RequestType(req.Type)) {
		details = append(details, FieldError{Field: "type", Message: "must be one of: buy, sell, partnership, board_nomination, feedback"})
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	created, err := p.requests.Create(r.Context(), &models.InvestorRequest{
		Type:     models.RequestType(req.Type),
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Message:  req.Message,
	})
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// RequestsList handles GET /api/admin/requests with type/status filters.
func (a *Admin) RequestsList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var details []FieldError

	page, limit := 1, 20
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
		if err != nil || n < 1 || n > 100 {
			details = append(details, FieldError{Field: "limit", Message: "must be an integer between 1 and 100"})
		} else {
			limit = n
		}
	}

	f := store.RequestFilter{Limit: limit, Offset: (page - 1) * limit}
	if v := q.Get("type"); v != "" {
		t := models.RequestType(v)
		if !models.ValidRequestType(t) {
			details = append(details, FieldError{Field: "type", Message: "unknown request type"})
		} else {
			f.Type = &t
		}
	}
	if v := q.Get("status"); v != "" {
		s := models.RequestStatus(v)
		if !models.ValidRequestStatus(s) {
			details = append(details, FieldError{Field: "status", Message: "unknown request status"})
		} else {
			f.Status = &s
		}
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	items, total, err := a.requests.List(r.Context(), f)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if items == nil {
		items = []models.InvestorRequest{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"requests": items,
		"meta":     news.NewPageMeta(page, limit, total),
	})
}

type updateRequestStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RequestSetStatus handles PATCH /api/admin/requests/{id}: triage only,
// the submitted content itself is immutable.
func (a *Admin) RequestSetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeValidationError(w, []FieldError{{Field: "id", Message: "must be a valid uuid"}})
		return
	}

	var req updateRequestStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	details := validateStruct(req)
	if req.Status != "" && !models.ValidRequestStatus(models.RequestStatus(req.Status)) {
		details = append(details, FieldError{Field: "status", Message: "must be one of: new, in_review, closed"})
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	updated, err := a.requests.SetStatus(r.Context(), id, models.RequestStatus(req.Status))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "REQUEST_NOT_FOUND", "investor request not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
