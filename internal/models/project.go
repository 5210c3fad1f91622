// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the visibility state of an investment project.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusPublished ProjectStatus = "published"
)

// Project represents an investment project presented on the portal.
type Project struct {
	ID        uuid.UUID     `json:"id"`
	Title     string        `json:"title"`
	Slug      string        `json:"slug"`
	Summary   string        `json:"summary"`
	BodyMD    string        `json:"bodyMd"`
	CoverKey  *string       `json:"coverKey"`
	Status    ProjectStatus `json:"status"`
	SortOrder int           `json:"sortOrder"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
