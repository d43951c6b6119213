package permissions

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/pkg/repository"
)

// Store persists permission grants.
type Store interface {
	Find(ctx context.Context, id uuid.UUID) (Permission, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Permission, error)
	Insert(ctx context.Context, p Permission) (Permission, error)
	// Update replaces p when its RowVersion matches the stored row.
	Update(ctx context.Context, p Permission) (Permission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgStore struct {
	db *sql.DB
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *sql.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Find(ctx context.Context, id uuid.UUID) (Permission, error) {
	q := `SELECT ` + columns + ` FROM document_permissions WHERE id = $1`

	p, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanPermission)
	if err != nil {
		return Permission{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return p, nil
}

func (s *pgStore) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Permission, error) {
	q := `SELECT ` + columns + ` FROM document_permissions
		WHERE document_id = $1
		ORDER BY created_at`

	perms, err := repository.QueryMany(ctx, s.db, q, []any{documentID}, scanPermission)
	if err != nil {
		return nil, fmt.Errorf("query permissions: %w", err)
	}
	return perms, nil
}

func (s *pgStore) Insert(ctx context.Context, p Permission) (Permission, error) {
	q := `
		INSERT INTO document_permissions(
			id, document_id, principal_id, permission_type, is_granted, expires_at,
			tenant_id, created_by, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + columns

	args := []any{
		p.ID,
		p.DocumentID,
		p.PrincipalID,
		p.Type,
		p.Granted,
		p.ExpiresAt,
		p.TenantID,
		p.CreatedBy,
	}

	created, err := repository.QueryOne(ctx, s.db, q, args, scanPermission)
	if err != nil {
		return Permission{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return created, nil
}

func (s *pgStore) Update(ctx context.Context, p Permission) (Permission, error) {
	q := `
		UPDATE document_permissions SET
			document_id = $3, principal_id = $4, permission_type = $5, is_granted = $6,
			expires_at = $7, tenant_id = $8, updated_by = $9,
			updated_at = now(), row_version = row_version + 1
		WHERE id = $1 AND row_version = $2
		RETURNING ` + columns

	args := []any{
		p.ID,
		p.RowVersion,
		p.DocumentID,
		p.PrincipalID,
		p.Type,
		p.Granted,
		p.ExpiresAt,
		p.TenantID,
		p.UpdatedBy,
	}

	updated, err := repository.QueryVersioned(ctx, s.db, q, args, scanPermission)
	if err != nil {
		return Permission{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return updated, nil
}

func (s *pgStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, s.db, "DELETE FROM document_permissions WHERE id = $1", id)
	return repository.MapError(err, ErrNotFound, ErrConflict)
}
