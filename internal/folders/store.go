package folders

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/pkg/repository"
)

// Store persists folders.
type Store interface {
	Find(ctx context.Context, id uuid.UUID) (Folder, error)
	ListChildren(ctx context.Context, tenantID string, parentID *uuid.UUID) ([]Folder, error)
	CountChildren(ctx context.Context, id uuid.UUID) (int, error)
	Insert(ctx context.Context, f Folder) (Folder, error)
	// Update replaces f when its RowVersion matches the stored row. When
	// f.Path differs from previousPath, every descendant path is rewritten
	// in the same transaction.
	Update(ctx context.Context, f Folder, previousPath string) (Folder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgStore struct {
	db *sql.DB
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *sql.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Find(ctx context.Context, id uuid.UUID) (Folder, error) {
	q := `SELECT ` + columns + ` FROM folders WHERE id = $1`

	f, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanFolder)
	if err != nil {
		return Folder{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return f, nil
}

func (s *pgStore) ListChildren(ctx context.Context, tenantID string, parentID *uuid.UUID) ([]Folder, error) {
	var (
		q    string
		args []any
	)
	if parentID == nil {
		q = `SELECT ` + columns + ` FROM folders
			WHERE parent_folder_id IS NULL AND tenant_id = $1
			ORDER BY name`
		args = []any{tenantID}
	} else {
		q = `SELECT ` + columns + ` FROM folders
			WHERE parent_folder_id = $1
			ORDER BY name`
		args = []any{*parentID}
	}

	folders, err := repository.QueryMany(ctx, s.db, q, args, scanFolder)
	if err != nil {
		return nil, fmt.Errorf("query folders: %w", err)
	}
	return folders, nil
}

func (s *pgStore) CountChildren(ctx context.Context, id uuid.UUID) (int, error) {
	n, err := repository.QueryScalar[int](ctx, s.db, "SELECT count(*) FROM folders WHERE parent_folder_id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("count subfolders: %w", err)
	}
	return n, nil
}

func (s *pgStore) Insert(ctx context.Context, f Folder) (Folder, error) {
	q := `
		INSERT INTO folders(
			id, name, description, parent_folder_id, path, security_level, is_system_folder,
			tenant_id, created_by, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING ` + columns

	args := []any{
		f.ID,
		f.Name,
		f.Description,
		f.ParentID,
		f.Path,
		f.SecurityLevel,
		f.System,
		f.TenantID,
		f.CreatedBy,
	}

	created, err := repository.QueryOne(ctx, s.db, q, args, scanFolder)
	if err != nil {
		return Folder{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return created, nil
}

func (s *pgStore) Update(ctx context.Context, f Folder, previousPath string) (Folder, error) {
	updated, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Folder, error) {
		q := `
			UPDATE folders SET
				name = $3, description = $4, parent_folder_id = $5, path = $6,
				security_level = $7, updated_by = $8,
				updated_at = now(), row_version = row_version + 1
			WHERE id = $1 AND row_version = $2
			RETURNING ` + columns

		args := []any{
			f.ID,
			f.RowVersion,
			f.Name,
			f.Description,
			f.ParentID,
			f.Path,
			f.SecurityLevel,
			f.UpdatedBy,
		}

		updated, err := repository.QueryVersioned(ctx, tx, q, args, scanFolder)
		if err != nil {
			return Folder{}, err
		}

		if updated.Path == previousPath {
			return updated, nil
		}

		if _, err := tx.ExecContext(
			ctx,
			`UPDATE folders SET
				path = $1 || substr(path, char_length($2) + 1),
				updated_at = now(), row_version = row_version + 1
			WHERE tenant_id = $3 AND left(path, char_length($2) + 1) = $2 || '/'`,
			updated.Path,
			previousPath,
			updated.TenantID,
		); err != nil {
			return Folder{}, err
		}

		return updated, nil
	})
	if err != nil {
		return Folder{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return updated, nil
}

func (s *pgStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, s.db, "DELETE FROM folders WHERE id = $1", id)
	return repository.MapError(err, ErrNotFound, ErrConflict)
}
