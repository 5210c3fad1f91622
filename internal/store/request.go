// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"irportal/internal/models"
)

// RequestStore handles investor request database operations.
type RequestStore struct {
	db *sql.DB
}

// NewRequestStore creates a new RequestStore with the given database connection.
func NewRequestStore(db *sql.DB) *RequestStore {
	return &RequestStore{db: db}
}

const requestColumns = `id, type, full_name, email, phone, message, status,
	created_at, updated_at`

func scanRequest(scanner interface{ Scan(...any) error }) (*models.InvestorRequest, error) {
	var r models.InvestorRequest
	err := scanner.Scan(
		&r.ID, &r.Type, &r.FullName, &r.Email, &r.Phone, &r.Message, &r.Status,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RequestFilter selects investor requests by type and status, paginated.
type RequestFilter struct {
	Type   *models.RequestType
	Status *models.RequestStatus
	Limit  int
	Offset int
}

// List returns one page of investor requests, newest first, with the exact
// total count of matching rows.
func (s *RequestStore) List(ctx context.Context, f RequestFilter) ([]models.InvestorRequest, int, error) {
	var conds []string
	var args []any
	if f.Type != nil {
		args = append(args, *f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM investor_requests"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count requests: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+requestColumns+" FROM investor_requests"+where+
			fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var items []models.InvestorRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan request: %w", err)
		}
		items = append(items, *r)
	}
	return items, total, rows.Err()
}

// Create inserts a newly submitted investor request with status "new".
func (s *RequestStore) Create(ctx context.Context, r *models.InvestorRequest) (*models.InvestorRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO investor_requests (type, full_name, email, phone, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+requestColumns,
		r.Type, r.FullName, r.Email, r.Phone, r.Message)
	created, err := scanRequest(row)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return created, nil
}

// SetStatus moves a request through triage. Returns nil if no row matched.
func (s *RequestStore) SetStatus(ctx context.Context, id uuid.UUID, status models.RequestStatus) (*models.InvestorRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE investor_requests SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+requestColumns, status, id)
	updated, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set request status: %w", err)
	}
	return updated, nil
}
