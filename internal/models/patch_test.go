// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"testing"
)

func TestNewsPatchTriState(t *testing.T) {
	var p NewsPatch
	payload := `{"title":"New Title","coverKey":null}`
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Present with a value.
	if !p.Title.Set || p.Title.Null {
		t.Errorf("title: Set=%v Null=%v, want set non-null", p.Title.Set, p.Title.Null)
	}
	if p.Title.Value != "New Title" {
		t.Errorf("title value: got %q", p.Title.Value)
	}

	// Present as explicit null.
	if !p.CoverKey.Set || !p.CoverKey.Null {
		t.Errorf("coverKey: Set=%v Null=%v, want set null", p.CoverKey.Set, p.CoverKey.Null)
	}
	if p.CoverKey.Ptr() != nil {
		t.Error("coverKey.Ptr(): want nil for explicit null")
	}

	// Absent keys stay untouched.
	if p.Slug.Set || p.BodyMD.Set || p.Status.Set {
		t.Error("absent keys must not be marked as set")
	}
	if p.Empty() {
		t.Error("patch with set fields reported empty")
	}
}

func TestNewsPatchEmpty(t *testing.T) {
	var p NewsPatch
	if err := json.Unmarshal([]byte(`{}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Empty() {
		t.Error("empty object must decode to an empty patch")
	}
}

func TestFieldPtr(t *testing.T) {
	f := Field[string]{Set: true, Value: "x"}
	if p := f.Ptr(); p == nil || *p != "x" {
		t.Errorf("Ptr: got %v, want pointer to %q", p, "x")
	}
}
