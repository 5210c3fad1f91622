// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Field is a tri-state patch value used for partial updates:
//
//	unset (key absent in JSON)  → leave the column untouched
//	set to null                 → clear the column
//	set to a value              → replace the column
//
// encoding/json only invokes UnmarshalJSON for keys present in the payload,
// which is what makes the absent/null distinction observable.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON marks the field as set and records either the null marker
// or the decoded value.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(data, []byte("null")) {
		f.Null = true
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// Ptr returns the value as a pointer, or nil when the field carries null.
// Only meaningful when Set is true.
func (f Field[T]) Ptr() *T {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// NewsPatch is the sparse change-set for a partial news update. Every field
// is optional; at least one must be set (enforced at the validation edge).
type NewsPatch struct {
	Title       Field[string]     `json:"title"`
	Slug        Field[string]     `json:"slug"`
	BodyMD      Field[string]     `json:"bodyMd"`
	CoverKey    Field[string]     `json:"coverKey"`
	CategoryID  Field[uuid.UUID]  `json:"categoryId"`
	Status      Field[NewsStatus] `json:"status"`
	ScheduledAt Field[time.Time]  `json:"scheduledAt"`
	PublishedAt Field[time.Time]  `json:"publishedAt"`
}

// Empty reports whether no field of the patch is set.
func (p *NewsPatch) Empty() bool {
	return !p.Title.Set && !p.Slug.Set && !p.BodyMD.Set && !p.CoverKey.Set &&
		!p.CategoryID.Set && !p.Status.Set && !p.ScheduledAt.Set && !p.PublishedAt.Set
}
