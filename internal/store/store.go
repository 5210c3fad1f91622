// Package store provides database access methods for all portal entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the PostgreSQL error code for a unique constraint
// violation (SQLSTATE 23505).
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err was caused by a unique constraint
// violation. The unique constraint on news/project slugs is the sole
// enforcement of slug uniqueness — there is deliberately no application-side
// pre-check, so concurrent writers race safely at the database.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// escapeLike escapes the LIKE/ILIKE pattern metacharacters in a user-supplied
// search term so the term matches literally. Backslash is PostgreSQL's
// default escape character.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}
