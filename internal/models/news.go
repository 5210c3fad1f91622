// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsStatus represents the publishing state of a news item.
type NewsStatus string

const (
	NewsStatusDraft     NewsStatus = "draft"
	NewsStatusScheduled NewsStatus = "scheduled"
	NewsStatusPublished NewsStatus = "published"
)

// ValidNewsStatus reports whether s is one of the known statuses.
func ValidNewsStatus(s NewsStatus) bool {
	switch s {
	case NewsStatusDraft, NewsStatusScheduled, NewsStatusPublished:
		return true
	}
	return false
}

// News represents a single news article on the investor portal.
// Category and Author are read-only joins resolved at fetch time; they are
// never written through this entity.
type News struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	BodyMD      string     `json:"bodyMd"`
	CoverKey    *string    `json:"coverKey"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	AuthorID    *uuid.UUID `json:"authorId"`
	Status      NewsStatus `json:"status"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Joined sub-objects, populated by the store.
	Category *Category   `json:"category,omitempty"`
	Author   *AuthorInfo `json:"author,omitempty"`
}

// AuthorInfo is the slim author projection attached to fetched news rows.
type AuthorInfo struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// IsPublished returns true if the item is in published status.
func (n *News) IsPublished() bool {
	return n.Status == NewsStatusPublished
}
