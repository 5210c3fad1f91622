// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"irportal/internal/models"
	"irportal/internal/slug"
	"irportal/internal/store"
)

// CategoriesList handles GET /api/admin/categories.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	items, err := a.categories.List(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if items == nil {
		items = []models.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": items})
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
	Slug string `json:"slug" validate:"required"`
}

// CategoryCreate handles POST /api/admin/categories.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	details := validateStruct(req)
	if req.Slug != "" && !slug.Valid(req.Slug) {
		details = append(details, FieldError{Field: "slug", Message: "must be 3-120 lowercase letters, digits and hyphens"})
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	created, err := a.categories.Create(r.Context(), req.Name, req.Slug)
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "CATEGORY_SLUG_EXISTS", "a category with this slug already exists")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// CategoryDelete handles DELETE /api/admin/categories/{id}. News rows keep
// their content; the foreign key nulls their category reference.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeValidationError(w, []FieldError{{Field: "id", Message: "must be a valid uuid"}})
		return
	}
	deleted, err := a.categories.Delete(r.Context(), id)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "CATEGORY_NOT_FOUND", "category not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
