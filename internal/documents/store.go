package documents

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/pkg/repository"
)

// Store persists documents and their version snapshots.
// Implementations return ErrNotFound, ErrVersionNotFound, and ErrConflict
// rather than driver errors for missing rows and stale writes.
type Store interface {
	Find(ctx context.Context, id uuid.UUID) (Document, error)
	// ListByFolder returns documents in folderID, or unfiled documents when folderID is nil.
	ListByFolder(ctx context.Context, folderID *uuid.UUID) ([]Document, error)
	Insert(ctx context.Context, d Document) (Document, error)
	// Update replaces d when its RowVersion matches the stored row.
	Update(ctx context.Context, d Document) (Document, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Revise updates d and records v as its current version in one transaction.
	Revise(ctx context.Context, d Document, v Version) (Document, Version, error)
	ListVersions(ctx context.Context, documentID uuid.UUID) ([]Version, error)
	FindVersion(ctx context.Context, id uuid.UUID) (Version, error)
	DeleteVersion(ctx context.Context, id uuid.UUID) error
}

type pgStore struct {
	db *sql.DB
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *sql.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Find(ctx context.Context, id uuid.UUID) (Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

	d, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanDocument)
	if err != nil {
		return Document{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return d, nil
}

func (s *pgStore) ListByFolder(ctx context.Context, folderID *uuid.UUID) ([]Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents
		WHERE folder_id IS NOT DISTINCT FROM $1
		ORDER BY created_at DESC`

	docs, err := repository.QueryMany(ctx, s.db, q, []any{folderID}, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return docs, nil
}

func (s *pgStore) Insert(ctx context.Context, d Document) (Document, error) {
	q := `
		INSERT INTO documents(
			id, name, description, file_name, file_extension, mime_type, file_size,
			page_count, status, document_type, security_level, storage_path, checksum, version,
			folder_id, tenant_id, retention_date, created_by, updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)
		RETURNING ` + documentColumns

	args := []any{
		d.ID,
		d.Name,
		d.Description,
		d.FileName,
		d.FileExtension,
		d.MimeType,
		d.FileSize,
		d.PageCount,
		d.Status,
		d.DocumentType,
		d.SecurityLevel,
		d.StoragePath,
		d.Checksum,
		d.Version,
		d.FolderID,
		d.TenantID,
		d.RetentionDate,
		d.CreatedBy,
	}

	created, err := repository.QueryOne(ctx, s.db, q, args, scanDocument)
	if err != nil {
		return Document{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return created, nil
}

func (s *pgStore) Update(ctx context.Context, d Document) (Document, error) {
	updated, err := updateDocument(ctx, s.db, d)
	if err != nil {
		return Document{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return updated, nil
}

func (s *pgStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, s.db, "DELETE FROM documents WHERE id = $1", id)
	return repository.MapError(err, ErrNotFound, ErrConflict)
}

func (s *pgStore) Revise(ctx context.Context, d Document, v Version) (Document, Version, error) {
	type revision struct {
		doc     Document
		version Version
	}

	r, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (revision, error) {
		doc, err := updateDocument(ctx, tx, d)
		if err != nil {
			return revision{}, err
		}

		if _, err := tx.ExecContext(
			ctx,
			"UPDATE document_versions SET is_current = false WHERE document_id = $1 AND is_current",
			d.ID,
		); err != nil {
			return revision{}, err
		}

		q := `
			INSERT INTO document_versions(
				id, document_id, version_number, label, file_name, mime_type, file_size,
				storage_path, checksum, change_summary, is_major, is_current, created_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, true, $12)
			RETURNING ` + versionColumns

		args := []any{
			v.ID,
			v.DocumentID,
			v.VersionNumber,
			v.Label,
			v.FileName,
			v.MimeType,
			v.FileSize,
			v.StoragePath,
			v.Checksum,
			v.ChangeSummary,
			v.Major,
			v.CreatedBy,
		}

		version, err := repository.QueryOne(ctx, tx, q, args, scanVersion)
		if err != nil {
			return revision{}, err
		}

		return revision{doc: doc, version: version}, nil
	})

	if err != nil {
		return Document{}, Version{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return r.doc, r.version, nil
}

func (s *pgStore) ListVersions(ctx context.Context, documentID uuid.UUID) ([]Version, error) {
	q := `SELECT ` + versionColumns + ` FROM document_versions
		WHERE document_id = $1
		ORDER BY version_number`

	versions, err := repository.QueryMany(ctx, s.db, q, []any{documentID}, scanVersion)
	if err != nil {
		return nil, fmt.Errorf("query document versions: %w", err)
	}
	return versions, nil
}

func (s *pgStore) FindVersion(ctx context.Context, id uuid.UUID) (Version, error) {
	q := `SELECT ` + versionColumns + ` FROM document_versions WHERE id = $1`

	v, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanVersion)
	if err != nil {
		return Version{}, repository.MapError(err, ErrVersionNotFound, ErrConflict)
	}
	return v, nil
}

func (s *pgStore) DeleteVersion(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, s.db, "DELETE FROM document_versions WHERE id = $1", id)
	return repository.MapError(err, ErrVersionNotFound, ErrConflict)
}

func updateDocument(ctx context.Context, q repository.Querier, d Document) (Document, error) {
	query := `
		UPDATE documents SET
			name = $3, description = $4, file_name = $5, file_extension = $6, mime_type = $7,
			file_size = $8, page_count = $9, status = $10, document_type = $11, security_level = $12,
			storage_path = $13, checksum = $14, version = $15, folder_id = $16, tenant_id = $17,
			retention_date = $18, updated_by = $19, updated_at = now(), row_version = row_version + 1
		WHERE id = $1 AND row_version = $2
		RETURNING ` + documentColumns

	args := []any{
		d.ID,
		d.RowVersion,
		d.Name,
		d.Description,
		d.FileName,
		d.FileExtension,
		d.MimeType,
		d.FileSize,
		d.PageCount,
		d.Status,
		d.DocumentType,
		d.SecurityLevel,
		d.StoragePath,
		d.Checksum,
		d.Version,
		d.FolderID,
		d.TenantID,
		d.RetentionDate,
		d.UpdatedBy,
	}

	return repository.QueryVersioned(ctx, q, query, args, scanDocument)
}
