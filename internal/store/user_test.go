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

func TestUserStoreCreateAndAuthenticate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	email := "user-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	created, err := s.Create(ctx, email, "s3cret-pass", "Test Editor", models.RoleEditor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Role != models.RoleEditor {
		t.Errorf("role: got %q, want editor", created.Role)
	}
	if created.TOTPEnabled {
		t.Error("new user must start without 2FA")
	}
	if !created.Needs2FASetup() {
		t.Error("new user must need 2FA setup")
	}

	found, err := s.FindByEmail(ctx, email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil {
		t.Fatal("expected user, got nil")
	}

	if !s.CheckPassword(found, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(found, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestUserStoreFindByEmailMissing(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	found, err := s.FindByEmail(context.Background(), "nobody-"+uuid.NewString()[:8]+"@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found != nil {
		t.Error("expected nil for unknown email")
	}
}

func TestUserStoreTOTPEnrollment(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	email := "totp-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	created, err := s.Create(ctx, email, "pass-word", "TOTP User", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.SetTOTPSecret(ctx, created.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := s.EnableTOTP(ctx, created.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.TOTPSecret == nil || *found.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Error("totp secret not persisted")
	}
	if !found.TOTPEnabled {
		t.Error("totp_enabled not persisted")
	}
	if found.Needs2FASetup() {
		t.Error("enrolled user must not need setup")
	}
}
