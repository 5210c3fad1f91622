// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the investor portal API.
// Handlers are grouped by concern (admin, auth, public) and receive their
// dependencies through the handler struct. Handlers validate input shape,
// call the service/store layer, and translate domain errors to HTTP
// statuses — no business logic lives here.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"irportal/internal/news"
)

// FieldError is one entry of a validation failure's detail list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// apiError is the uniform error body: a stable machine-readable code, a
// short human message, and field details for validation failures only.
type apiError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError emits a code+message error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: message}})
}

// writeValidationError emits the uniform 400 validation failure shape.
func writeValidationError(w http.ResponseWriter, details []FieldError) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: apiError{
		Code:    "VALIDATION_ERROR",
		Message: "request validation failed",
		Details: details,
	}})
}

// writeNewsError translates a news domain error to its HTTP status.
// Unrecognized errors become a generic 500: the specifics stay in the
// server log, never in the response body.
func writeNewsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, news.ErrNotFound):
		writeError(w, http.StatusNotFound, "NEWS_NOT_FOUND", "news item not found")
	case errors.Is(err, news.ErrSlugExists):
		writeError(w, http.StatusConflict, "NEWS_SLUG_EXISTS", "a news item with this slug already exists")
	default:
		slog.Error("news operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

// writeInternalError logs err and emits a generic 500 body.
func writeInternalError(w http.ResponseWriter, err error) {
	slog.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
// Returns false after writing the 400 response when the body is malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeValidationError(w, []FieldError{{Field: "body", Message: "malformed JSON body"}})
		return false
	}
	return true
}
