// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"irportal/internal/analytics"
	"irportal/internal/news"
	"irportal/internal/storage"
	"irportal/internal/store"
)

// Admin groups the back-office API handlers and their dependencies.
type Admin struct {
	newsSvc    *news.Service
	categories *store.CategoryStore
	projects   *store.ProjectStore
	requests   *store.RequestStore
	profile    *store.ProfileStore
	storage    *storage.Client
	analytics  *analytics.Recorder
}

// NewAdmin creates the Admin handler group. storage may be nil if S3 is not
// configured; the presign endpoint then reports storage as unavailable.
func NewAdmin(newsSvc *news.Service, categories *store.CategoryStore, projects *store.ProjectStore, requests *store.RequestStore, profile *store.ProfileStore, storageClient *storage.Client, rec *analytics.Recorder) *Admin {
	return &Admin{
		newsSvc:    newsSvc,
		categories: categories,
		projects:   projects,
		requests:   requests,
		profile:    profile,
		storage:    storageClient,
		analytics:  rec,
	}
}
