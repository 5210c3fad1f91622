// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"irportal/internal/models"
)

func newTestProject(slug string, status models.ProjectStatus) *models.Project {
	return &models.Project{
		Title:   "Project " + slug,
		Slug:    slug,
		Summary: "A short summary.",
		BodyMD:  "Project body.",
		Status:  status,
	}
}

func TestProjectStoreCreateAndUpdate(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	ctx := context.Background()

	slug := "test-proj-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	created, err := s.Create(ctx, newTestProject(slug, models.ProjectStatusDraft))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.Status != models.ProjectStatusDraft {
		t.Errorf("status: got %q, want draft", created.Status)
	}

	created.Title = "Renamed Project"
	created.Status = models.ProjectStatusPublished
	created.SortOrder = 5

	updated, err := s.Update(ctx, created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated project")
	}
	if updated.Title != "Renamed Project" || updated.SortOrder != 5 {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestProjectStoreSlugConflict(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	ctx := context.Background()

	slug := "test-proj-dup-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, slug) })

	if _, err := s.Create(ctx, newTestProject(slug, models.ProjectStatusDraft)); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := s.Create(ctx, newTestProject(slug, models.ProjectStatusDraft))
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got: %v", err)
	}
}

func TestProjectStoreListPublished(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	ctx := context.Background()

	draftSlug := "test-proj-draft-" + uuid.NewString()[:8]
	pubSlug := "test-proj-pub-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanProjects(t, db, draftSlug, pubSlug) })

	if _, err := s.Create(ctx, newTestProject(draftSlug, models.ProjectStatusDraft)); err != nil {
		t.Fatalf("Create draft: %v", err)
	}
	if _, err := s.Create(ctx, newTestProject(pubSlug, models.ProjectStatusPublished)); err != nil {
		t.Fatalf("Create published: %v", err)
	}

	published, err := s.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	for _, p := range published {
		if p.Slug == draftSlug {
			t.Error("draft project leaked into published listing")
		}
	}

	var found bool
	for _, p := range published {
		if p.Slug == pubSlug {
			found = true
		}
	}
	if !found {
		t.Error("published project missing from listing")
	}
}

func TestProjectStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewProjectStore(db)
	ctx := context.Background()

	slug := "test-proj-del-" + uuid.NewString()[:8]
	created, err := s.Create(ctx, newTestProject(slug, models.ProjectStatusDraft))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := s.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Error("expected delete to report true")
	}

	deleted, err = s.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete (again): %v", err)
	}
	if deleted {
		t.Error("expected second delete to report false")
	}
}
