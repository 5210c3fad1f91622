// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"irportal/internal/storage"
)

// maxUploadSize is the maximum declared size accepted for a presigned
// cover-image upload (10 MB).
const maxUploadSize = 10 << 20

// allowedUploadTypes defines MIME types accepted for cover images.
var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// presignRequest is the POST /api/admin/uploads/presign body.
type presignRequest struct {
	FileName string `json:"fileName" validate:"required,max=255"`
	FileType string `json:"fileType" validate:"required"`
	FileSize int64  `json:"fileSize" validate:"required,gte=1"`
	Variant  string `json:"variant" validate:"required,oneof=cover attachment"`
}

// PresignUpload handles POST /api/admin/uploads/presign: validates the
// declared file, derives the storage key, and returns a time-boxed upload
// credential. The file bytes never pass through this server.
func (a *Admin) PresignUpload(w http.ResponseWriter, r *http.Request) {
	if a.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "object storage is not configured")
		return
	}

	var req presignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	details := validateStruct(req)
	if req.FileType != "" && !allowedUploadTypes[strings.ToLower(req.FileType)] {
		details = append(details, FieldError{Field: "fileType", Message: "must be image/jpeg, image/png, or image/webp"})
	}
	if req.FileSize > maxUploadSize {
		details = append(details, FieldError{Field: "fileSize", Message: "must be at most 10 MB"})
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}

	key := storage.BuildKey(req.Variant, req.FileName, time.Now().UTC(), uuid.New())

	cred, err := a.storage.PresignUpload(r.Context(), key, req.FileType, req.FileSize)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cred)
}
