package verifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/pkg/repository"
)

// Store persists verification records. Records are immutable once written.
type Store interface {
	Insert(ctx context.Context, v Verification) (Verification, error)
	Find(ctx context.Context, id uuid.UUID) (Verification, error)
	ListBySignature(ctx context.Context, signatureID uuid.UUID) ([]Verification, error)
	// Latest returns the most recently verified record, or nil when none exist.
	Latest(ctx context.Context, signatureID uuid.UUID) (*Verification, error)
}

type pgStore struct {
	db *sql.DB
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *sql.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Insert(ctx context.Context, v Verification) (Verification, error) {
	q := `
		INSERT INTO signature_verifications(
			id, signature_id, status, provider,
			certificate_valid, certificate_subject, certificate_issuer,
			certificate_valid_from, certificate_valid_until,
			document_integrity_valid, details, verified_at, tenant_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + columns

	args := []any{
		v.ID,
		v.SignatureID,
		v.Status,
		v.Provider,
		v.CertificateValid,
		v.CertificateSubject,
		v.CertificateIssuer,
		v.CertificateValidFrom,
		v.CertificateValidUntil,
		v.DocumentIntegrityValid,
		v.Details,
		v.VerifiedAt,
		v.TenantID,
	}

	created, err := repository.QueryOne(ctx, s.db, q, args, scanVerification)
	if err != nil {
		return Verification{}, repository.MapError(err, ErrSignatureNotFound, ErrDuplicate)
	}
	return created, nil
}

func (s *pgStore) Find(ctx context.Context, id uuid.UUID) (Verification, error) {
	q := `SELECT ` + columns + ` FROM signature_verifications WHERE id = $1`

	v, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanVerification)
	if err != nil {
		return Verification{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return v, nil
}

func (s *pgStore) ListBySignature(ctx context.Context, signatureID uuid.UUID) ([]Verification, error) {
	q := `SELECT ` + columns + ` FROM signature_verifications
		WHERE signature_id = $1
		ORDER BY verified_at DESC`

	vs, err := repository.QueryMany(ctx, s.db, q, []any{signatureID}, scanVerification)
	if err != nil {
		return nil, fmt.Errorf("query verifications: %w", err)
	}
	return vs, nil
}

func (s *pgStore) Latest(ctx context.Context, signatureID uuid.UUID) (*Verification, error) {
	q := `SELECT ` + columns + ` FROM signature_verifications
		WHERE signature_id = $1
		ORDER BY verified_at DESC
		LIMIT 1`

	v, err := repository.QueryOne(ctx, s.db, q, []any{signatureID}, scanVerification)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest verification: %w", err)
	}
	return &v, nil
}
