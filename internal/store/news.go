// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"irportal/internal/models"
)

// NewsStore handles all news-related database operations.
type NewsStore struct {
	db *sql.DB
}

// NewNewsStore creates a new NewsStore with the given database connection.
func NewNewsStore(db *sql.DB) *NewsStore {
	return &NewsStore{db: db}
}

// newsColumns lists the columns selected in news queries, including the
// left-joined category and author projections.
const newsColumns = `n.id, n.title, n.slug, n.body_md, n.cover_key,
	n.category_id, n.author_id, n.status, n.scheduled_at, n.published_at,
	n.created_at, n.updated_at,
	c.id, c.name, c.slug, c.created_at,
	u.id, u.email`

const newsFrom = ` FROM news n
	LEFT JOIN categories c ON c.id = n.category_id
	LEFT JOIN users u ON u.id = n.author_id`

// scanNews scans a joined news row. The category and author joins are
// nullable; they are attached only when present.
func scanNews(scanner interface{ Scan(...any) error }) (*models.News, error) {
	var n models.News
	var catID, authorID uuid.NullUUID
	var catName, catSlug, authorEmail sql.NullString
	var catCreated sql.NullTime

	err := scanner.Scan(
		&n.ID, &n.Title, &n.Slug, &n.BodyMD, &n.CoverKey,
		&n.CategoryID, &n.AuthorID, &n.Status, &n.ScheduledAt, &n.PublishedAt,
		&n.CreatedAt, &n.UpdatedAt,
		&catID, &catName, &catSlug, &catCreated,
		&authorID, &authorEmail,
	)
	if err != nil {
		return nil, err
	}

	if catID.Valid {
		n.Category = &models.Category{
			ID:        catID.UUID,
			Name:      catName.String,
			Slug:      catSlug.String,
			CreatedAt: catCreated.Time,
		}
	}
	if authorID.Valid {
		n.Author = &models.AuthorInfo{ID: authorID.UUID, Email: authorEmail.String}
	}
	return &n, nil
}

// NewsFilter describes the list query: equality filters, free-text search,
// sort column/direction, and the pagination window.
type NewsFilter struct {
	Status     *models.NewsStatus
	CategoryID *uuid.UUID
	Search     string
	SortBy     string // created_at, published_at, scheduled_at
	Order      string // asc, desc
	Limit      int
	Offset     int
}

// newsSortColumns whitelists sortable columns. Anything else falls back to
// created_at so user input never reaches the ORDER BY clause verbatim.
var newsSortColumns = map[string]string{
	"created_at":   "n.created_at",
	"published_at": "n.published_at",
	"scheduled_at": "n.scheduled_at",
}

// where builds the WHERE clause and argument list for the filter.
func (f *NewsFilter) where() (string, []any) {
	var conds []string
	var args []any

	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("n.status = $%d", len(args)))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("n.category_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		conds = append(conds, fmt.Sprintf("(n.title ILIKE $%d OR n.slug ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderBy returns the ORDER BY clause for the filter, applying the column
// whitelist and defaulting to created_at descending.
func (f *NewsFilter) orderBy() string {
	col, ok := newsSortColumns[f.SortBy]
	if !ok {
		col = "n.created_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s NULLS LAST", col, dir)
}

// List returns one page of news rows matching the filter, together with the
// exact total count of matching rows.
func (s *NewsStore) List(ctx context.Context, f NewsFilter) ([]models.News, int, error) {
	where, args := f.where()

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news n"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count news: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := "SELECT " + newsColumns + newsFrom + where + f.orderBy() +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	var items []models.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan news: %w", err)
		}
		items = append(items, *n)
	}
	return items, total, rows.Err()
}

// FindByID retrieves a news item by id regardless of status.
// Returns nil if not found.
func (s *NewsStore) FindByID(ctx context.Context, id uuid.UUID) (*models.News, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+newsColumns+newsFrom+" WHERE n.id = $1", id)
	n, err := scanNews(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find news by id: %w", err)
	}
	return n, nil
}

// FindPublishedByID retrieves a published news item by id. Used by the
// public endpoints, which must never expose drafts or scheduled items.
func (s *NewsStore) FindPublishedByID(ctx context.Context, id uuid.UUID) (*models.News, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+newsColumns+newsFrom+" WHERE n.id = $1 AND n.status = 'published'", id)
	n, err := scanNews(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find published news by id: %w", err)
	}
	return n, nil
}

// FindPublishedBySlug retrieves a published news item by slug.
func (s *NewsStore) FindPublishedBySlug(ctx context.Context, slug string) (*models.News, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+newsColumns+newsFrom+" WHERE n.slug = $1 AND n.status = 'published'", slug)
	n, err := scanNews(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find published news by slug: %w", err)
	}
	return n, nil
}

// Create inserts a new news row and returns it with joins resolved.
// A slug collision surfaces as the raw unique-violation error; callers
// classify it with IsUniqueViolation.
func (s *NewsStore) Create(ctx context.Context, n *models.News) (*models.News, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO news (title, slug, body_md, cover_key, category_id, author_id,
		                  status, scheduled_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, n.Title, n.Slug, n.BodyMD, n.CoverKey, n.CategoryID, n.AuthorID,
		n.Status, n.ScheduledAt, n.PublishedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update applies a sparse patch to a news row: only fields marked as set are
// written, so fields the caller did not touch cannot be lost to a concurrent
// writer. Returns nil if no row matched the id.
func (s *NewsStore) Update(ctx context.Context, id uuid.UUID, p *models.NewsPatch) (*models.News, error) {
	sets := []string{"updated_at = NOW()"}
	var args []any

	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Title.Set {
		add("title", p.Title.Value)
	}
	if p.Slug.Set {
		add("slug", p.Slug.Value)
	}
	if p.BodyMD.Set {
		add("body_md", p.BodyMD.Value)
	}
	if p.CoverKey.Set {
		add("cover_key", p.CoverKey.Ptr())
	}
	if p.CategoryID.Set {
		add("category_id", p.CategoryID.Ptr())
	}
	if p.Status.Set {
		add("status", p.Status.Value)
	}
	if p.ScheduledAt.Set {
		add("scheduled_at", p.ScheduledAt.Ptr())
	}
	if p.PublishedAt.Set {
		add("published_at", p.PublishedAt.Ptr())
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE news SET %s WHERE id = $%d RETURNING id",
		strings.Join(sets, ", "), len(args))

	var updatedID uuid.UUID
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&updatedID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}
	return s.FindByID(ctx, updatedID)
}

// Delete hard-deletes a news row. The deleted id is requested back as
// confirmation of effect; false means no row matched.
func (s *NewsStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var deletedID uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM news WHERE id = $1 RETURNING id`, id).Scan(&deletedID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete news: %w", err)
	}
	return true, nil
}

// PublishDue transitions every scheduled row whose scheduled_at is at or
// before asOf to published in one batched statement, then re-fetches the
// now-published items with joins resolved. Re-invoking is idempotent:
// published rows no longer match the predicate.
func (s *NewsStore) PublishDue(ctx context.Context, asOf time.Time) ([]models.News, error) {
	rows, err := s.db.QueryContext(ctx, `
		UPDATE news
		SET status = 'published', published_at = $1, updated_at = $1
		WHERE status = 'scheduled' AND scheduled_at <= $1
		RETURNING id
	`, asOf)
	if err != nil {
		return nil, fmt.Errorf("publish due news: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan published id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("publish due news: %w", err)
	}

	// The re-fetch runs outside the update statement; a concurrent edit
	// landing in between is observable in the returned items. Accepted.
	published := make([]models.News, 0, len(ids))
	for _, id := range ids {
		n, err := s.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if n != nil {
			published = append(published, *n)
		}
	}
	return published, nil
}
