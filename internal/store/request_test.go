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

func TestRequestStoreCreateAndTriage(t *testing.T) {
	db := testDB(t)
	s := NewRequestStore(db)
	ctx := context.Background()

	email := "req-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanRequests(t, db, email) })

	created, err := s.Create(ctx, &models.InvestorRequest{
		Type:     models.RequestTypeBuy,
		FullName: "Jane Investor",
		Email:    email,
		Message:  "Interested in acquiring a position.",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != models.RequestStatusNew {
		t.Errorf("status: got %q, want new", created.Status)
	}
	if created.Phone != nil {
		t.Error("expected nil phone when not provided")
	}

	updated, err := s.SetStatus(ctx, created.ID, models.RequestStatusInReview)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated request")
	}
	if updated.Status != models.RequestStatusInReview {
		t.Errorf("status: got %q, want in_review", updated.Status)
	}
	// Content is immutable under triage.
	if updated.Message != created.Message {
		t.Error("message must not change on status update")
	}
}

func TestRequestStoreSetStatusMissing(t *testing.T) {
	db := testDB(t)
	s := NewRequestStore(db)

	updated, err := s.SetStatus(context.Background(), uuid.New(), models.RequestStatusClosed)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestRequestStoreListFilters(t *testing.T) {
	db := testDB(t)
	s := NewRequestStore(db)
	ctx := context.Background()

	email := "req-list-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanRequests(t, db, email) })

	for _, typ := range []models.RequestType{models.RequestTypeBuy, models.RequestTypeSell, models.RequestTypeFeedback} {
		if _, err := s.Create(ctx, &models.InvestorRequest{
			Type:     typ,
			FullName: "Filter Test",
			Email:    email,
			Message:  "Message body for filter test.",
		}); err != nil {
			t.Fatalf("Create %s: %v", typ, err)
		}
	}

	buy := models.RequestTypeBuy
	items, total, err := s.List(ctx, RequestFilter{Type: &buy, Limit: 50})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total < 1 {
		t.Error("expected at least one buy request")
	}
	for _, it := range items {
		if it.Type != models.RequestTypeBuy {
			t.Errorf("type filter leaked %q", it.Type)
		}
	}
}
