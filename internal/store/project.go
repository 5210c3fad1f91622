// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"irportal/internal/models"
)

// ProjectStore handles investment project database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, title, slug, summary, body_md, cover_key,
	status, sort_order, created_at, updated_at`

func scanProject(scanner interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Summary, &p.BodyMD, &p.CoverKey,
		&p.Status, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all projects ordered by sort order, then recency.
func (s *ProjectStore) List(ctx context.Context) ([]models.Project, error) {
	return s.list(ctx, `SELECT `+projectColumns+` FROM projects
		ORDER BY sort_order ASC, created_at DESC`)
}

// ListPublished returns published projects for the public portal.
func (s *ProjectStore) ListPublished(ctx context.Context) ([]models.Project, error) {
	return s.list(ctx, `SELECT `+projectColumns+` FROM projects
		WHERE status = 'published'
		ORDER BY sort_order ASC, created_at DESC`)
}

func (s *ProjectStore) list(ctx context.Context, query string) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a project by id. Returns nil if not found.
func (s *ProjectStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// Create inserts a new project. Slug collisions surface as the raw
// unique-violation error.
func (s *ProjectStore) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO projects (title, slug, summary, body_md, cover_key, status, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+projectColumns,
		p.Title, p.Slug, p.Summary, p.BodyMD, p.CoverKey, p.Status, p.SortOrder)
	created, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

// Update rewrites the mutable fields of a project. Returns nil if no row
// matched the id.
func (s *ProjectStore) Update(ctx context.Context, p *models.Project) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE projects SET
			title = $1, slug = $2, summary = $3, body_md = $4, cover_key = $5,
			status = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING `+projectColumns,
		p.Title, p.Slug, p.Summary, p.BodyMD, p.CoverKey, p.Status, p.SortOrder, p.ID)
	updated, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return updated, nil
}

// Delete hard-deletes a project; false means no row matched.
func (s *ProjectStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var deletedID uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM projects WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return true, nil
}
