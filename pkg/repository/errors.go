package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgDuplicateKeyCode = "23505"
	pgForeignKeyCode   = "23503"
)

// ErrStale indicates an optimistic update matched no row at the expected row_version.
var ErrStale = errors.New("row version is stale")

// MapError translates database errors to domain errors.
// sql.ErrNoRows and PostgreSQL foreign key violations (23503) map to notFoundErr,
// unique violations (23505) and ErrStale map to conflictErr. Other errors are
// returned unchanged.
func MapError(err error, notFoundErr, conflictErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	if errors.Is(err, ErrStale) {
		return conflictErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgDuplicateKeyCode:
			return conflictErr
		case pgForeignKeyCode:
			return notFoundErr
		}
	}

	return err
}
