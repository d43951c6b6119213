package providers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/pkg/repository"
)

// Store persists signature providers.
type Store interface {
	Find(ctx context.Context, id uuid.UUID) (Provider, error)
	List(ctx context.Context, tenantID string) ([]Provider, error)
	FindDefault(ctx context.Context, tenantID string) (Provider, error)
	Insert(ctx context.Context, p Provider) (Provider, error)
	// Update replaces p when its RowVersion matches the stored row.
	Update(ctx context.Context, p Provider) (Provider, error)
	// MarkDefault clears the tenant's current default and flags id.
	MarkDefault(ctx context.Context, id uuid.UUID, tenantID, updatedBy string) (Provider, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgStore struct {
	db *sql.DB
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *sql.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Find(ctx context.Context, id uuid.UUID) (Provider, error) {
	q := `SELECT ` + columns + ` FROM signature_providers WHERE id = $1`

	p, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanProvider)
	if err != nil {
		return Provider{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return p, nil
}

func (s *pgStore) List(ctx context.Context, tenantID string) ([]Provider, error) {
	q := `SELECT ` + columns + ` FROM signature_providers
		WHERE tenant_id = $1
		ORDER BY is_default DESC, name`

	list, err := repository.QueryMany(ctx, s.db, q, []any{tenantID}, scanProvider)
	if err != nil {
		return nil, fmt.Errorf("query signature providers: %w", err)
	}
	return list, nil
}

func (s *pgStore) FindDefault(ctx context.Context, tenantID string) (Provider, error) {
	q := `SELECT ` + columns + ` FROM signature_providers WHERE tenant_id = $1 AND is_default`

	p, err := repository.QueryOne(ctx, s.db, q, []any{tenantID}, scanProvider)
	if err != nil {
		return Provider{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return p, nil
}

func (s *pgStore) Insert(ctx context.Context, p Provider) (Provider, error) {
	q := `
		INSERT INTO signature_providers(
			id, name, description, provider_code, is_active, is_default,
			tenant_id, created_by, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING ` + columns

	args := []any{
		p.ID,
		p.Name,
		p.Description,
		p.Code,
		p.Active,
		p.Default,
		p.TenantID,
		p.CreatedBy,
	}

	created, err := repository.QueryOne(ctx, s.db, q, args, scanProvider)
	if err != nil {
		return Provider{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return created, nil
}

func (s *pgStore) Update(ctx context.Context, p Provider) (Provider, error) {
	q := `
		UPDATE signature_providers SET
			name = $3, description = $4, provider_code = $5, is_active = $6, updated_by = $7,
			updated_at = now(), row_version = row_version + 1
		WHERE id = $1 AND row_version = $2
		RETURNING ` + columns

	args := []any{
		p.ID,
		p.RowVersion,
		p.Name,
		p.Description,
		p.Code,
		p.Active,
		p.UpdatedBy,
	}

	updated, err := repository.QueryVersioned(ctx, s.db, q, args, scanProvider)
	if err != nil {
		return Provider{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return updated, nil
}

func (s *pgStore) MarkDefault(ctx context.Context, id uuid.UUID, tenantID, updatedBy string) (Provider, error) {
	p, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Provider, error) {
		if _, err := tx.ExecContext(
			ctx,
			`UPDATE signature_providers SET
				is_default = false, updated_by = $2,
				updated_at = now(), row_version = row_version + 1
			WHERE tenant_id = $1 AND is_default AND id <> $3`,
			tenantID,
			updatedBy,
			id,
		); err != nil {
			return Provider{}, err
		}

		q := `
			UPDATE signature_providers SET
				is_default = true, updated_by = $2,
				updated_at = now(), row_version = row_version + 1
			WHERE id = $1
			RETURNING ` + columns

		return repository.QueryOne(ctx, tx, q, []any{id, updatedBy}, scanProvider)
	})
	if err != nil {
		return Provider{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return p, nil
}

func (s *pgStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, s.db, "DELETE FROM signature_providers WHERE id = $1", id)
	return repository.MapError(err, ErrNotFound, ErrConflict)
}
