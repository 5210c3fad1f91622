// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
)

// profileKeyPattern restricts section keys to safe slugs ("about",
// "share-capital", ...).
var profileKeyPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

type putProfileRequest struct {
	ValueMD string `json:"valueMd" validate:"required,max=50000"`
}

// ProfilePut handles PUT /api/admin/profile/{key}: upserts one company
// profile section.
func (a *Admin) ProfilePut(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !profileKeyPattern.MatchString(key) || len(key) > 64 {
		writeValidationError(w, []FieldError{{Field: "key", Message: "must be a lowercase section key"}})
		return
	}

	var req putProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := validateStruct(req); len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	if err := a.profile.Set(r.Context(), key, req.ValueMD); err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "valueMd": req.ValueMD})
}
