// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"irportal/internal/models"
)

// ProfileStore manages the company profile sections (keyed markdown content).
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore returns a new ProfileStore backed by the given database.
func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// All returns every profile section as a key → markdown map.
func (s *ProfileStore) All(ctx context.Context) (models.ProfileSections, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value_md FROM profile_sections ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list profile sections: %w", err)
	}
	defer rows.Close()

	sections := make(models.ProfileSections)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan profile section: %w", err)
		}
		sections[k] = v
	}
	return sections, rows.Err()
}

// Get returns a single section's markdown, or the empty string if missing.
func (s *ProfileStore) Get(ctx context.Context, key string) (string, error) {
	var val string
	err := s.db.QueryRowContext(ctx,
		`SELECT value_md FROM profile_sections WHERE key = $1`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get profile section: %w", err)
	}
	return val, nil
}

// Set upserts a single section.
func (s *ProfileStore) Set(ctx context.Context, key, valueMD string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile_sections (key, value_md) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value_md = EXCLUDED.value_md, updated_at = NOW()
	`, key, valueMD)
	if err != nil {
		return fmt.Errorf("set profile section: %w", err)
	}
	return nil
}
