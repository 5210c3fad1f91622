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

// projectID parses the {id} URL parameter, writing a 400 on failure.
func projectID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeValidationError(w, []FieldError{{Field: "id", Message: "must be a valid uuid"}})
		return uuid.Nil, false
	}
	return id, true
}

// ProjectsList handles GET /api/admin/projects: all projects, every status.
func (a *Admin) ProjectsList(w http.ResponseWriter, r *http.Request) {
	items, err := a.projects.List(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if items == nil {
		items = []models.Project{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": items})
}

type createProjectRequest struct {
	Title     string  `json:"title" validate:"required,min=3,max=200"`
	Slug      string  `json:"slug" validate:"required"`
	Summary   string  `json:"summary" validate:"required,max=500"`
	BodyMD    string  `json:"bodyMd" validate:"required"`
	CoverKey  *string `json:"coverKey"`
	Status    string  `json:"status" validate:"omitempty,oneof=draft published"`
	SortOrder int     `json:"sortOrder" validate:"gte=0"`
}

// ProjectCreate handles POST /api/admin/projects.
func (a *Admin) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
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

	status := models.ProjectStatusDraft
	if req.Status != "" {
		status = models.ProjectStatus(req.Status)
	}

	created, err := a.projects.Create(r.Context(), &models.Project{
		Title:     req.Title,
		Slug:      req.Slug,
		Summary:   req.Summary,
		BodyMD:    req.BodyMD,
		CoverKey:  req.CoverKey,
		Status:    status,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "PROJECT_SLUG_EXISTS", "a project with this slug already exists")
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type updateProjectRequest struct {
	Title     string  `json:"title" validate:"required,min=3,max=200"`
	Slug      string  `json:"slug" validate:"required"`
	Summary   string  `json:"summary" validate:"required,max=500"`
	BodyMD    string  `json:"bodyMd" validate:"required"`
	CoverKey  *string `json:"coverKey"`
	Status    string  `json:"status" validate:"required,oneof=draft published"`
	SortOrder int     `json:"sortOrder" validate:"gte=0"`
}

// ProjectUpdate handles PATCH /api/admin/projects/{id}. Projects are small
// enough that the admin UI sends the whole record back.
func (a *Admin) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	var req updateProjectRequest
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

	updated, err := a.projects.Update(r.Context(), &models.Project{
		ID:        id,
		Title:     req.Title,
		Slug:      req.Slug,
		Summary:   req.Summary,
		BodyMD:    req.BodyMD,
		CoverKey:  req.CoverKey,
		Status:    models.ProjectStatus(req.Status),
		SortOrder: req.SortOrder,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "PROJECT_SLUG_EXISTS", "a project with this slug already exists")
			return
		}
		writeInternalError(w, err)
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ProjectDelete handles DELETE /api/admin/projects/{id}.
func (a *Admin) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	deleted, err := a.projects.Delete(r.Context(), id)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "PROJECT_NOT_FOUND", "project not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
