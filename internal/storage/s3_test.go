// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestBuildKey(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	now := time.Date(2026, time.March, 5, 12, 0, 0, 0, time.UTC)

	got := BuildKey("cover", "Board Photo.JPG", now, id)
	want := "cover/2026/03/6ba7b810-9dad-11d1-80b4-00c04fd430c8.jpg"
	if got != want {
		t.Errorf("BuildKey = %q, want %q", got, want)
	}
}

func TestBuildKey_NoExtension(t *testing.T) {
	id := uuid.New()
	key := BuildKey("cover", "README", time.Now(), id)
	if strings.Contains(key[strings.LastIndex(key, "/"):], ".") {
		t.Errorf("BuildKey for extensionless name should not add a dot: %q", key)
	}
}

func TestNew_ReturnsNilWithoutCredentials(t *testing.T) {
	c, err := New("", "eu-central-1", "", "", "bucket", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c != nil {
		t.Fatal("New without endpoint/credentials should return nil client")
	}
}

func TestFileURL(t *testing.T) {
	c := &Client{endpoint: "https://s3.example.com", bucket: "media"}
	if got := c.FileURL("cover/2026/03/x.jpg"); got != "https://s3.example.com/media/cover/2026/03/x.jpg" {
		t.Errorf("FileURL = %q", got)
	}

	c.publicURL = "https://cdn.example.com"
	if got := c.FileURL("cover/2026/03/x.jpg"); got != "https://cdn.example.com/cover/2026/03/x.jpg" {
		t.Errorf("FileURL with publicURL = %q", got)
	}
}
