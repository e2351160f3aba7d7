package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/upb/project-manager/repositories"
)

// SQLSTATE codes mapped to repository sentinels.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// mapError prefixes err with op and translates the driver errors callers
// branch on into repository sentinels.
func mapError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		var sentinel error
		switch pqErr.Code {
		case uniqueViolation:
			sentinel = repositories.ErrDuplicate
		case foreignKeyViolation:
			sentinel = repositories.ErrReferenced
		}
		if sentinel != nil {
			return fmt.Errorf("%s: %w (%s)", op, sentinel, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// checkAffected reports ErrNotFound when a write matched no rows.
func checkAffected(op string, result sql.Result) error {
	n, err := result.RowsAffected()
	switch {
	case err != nil:
		return fmt.Errorf("%s: failed to get rows affected: %w", op, err)
	case n == 0:
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	}
	return nil
}
