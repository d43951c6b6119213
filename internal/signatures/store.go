package signatures

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/pkg/repository"
)

// Store persists signatures and their requests.
// Updates are guarded by RowVersion and report ErrConflict when it is stale.
type Store interface {
	Find(ctx context.Context, id uuid.UUID) (Signature, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Signature, error)
	CountByStatus(ctx context.Context, documentID uuid.UUID, status Status) (int, error)
	Insert(ctx context.Context, sig Signature) (Signature, error)
	Update(ctx context.Context, sig Signature) (Signature, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// AttachRequest updates sig and inserts req in one transaction.
	AttachRequest(ctx context.Context, sig Signature, req Request) (Signature, Request, error)
	// ApplyStatus updates req, and sig when non-nil, in one transaction.
	ApplyStatus(ctx context.Context, sig *Signature, req Request) (Request, error)

	FindRequest(ctx context.Context, id uuid.UUID) (Request, error)
	FindRequestByReference(ctx context.Context, reference string) (Request, error)
	ListRequests(ctx context.Context, signatureID uuid.UUID) ([]Request, error)
	UpdateRequest(ctx context.Context, req Request) (Request, error)
	// ListExpired returns PENDING requests whose expiration is before now.
	ListExpired(ctx context.Context, now time.Time) ([]Request, error)
	// MarkNotified and MarkReminded set the flag and its first timestamp.
	// Repeating either call leaves the row unchanged.
	MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) (Request, error)
	MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) (Request, error)
}

type pgStore struct {
	db *sql.DB
}

// NewStore creates a PostgreSQL-backed Store.
func NewStore(db *sql.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Find(ctx context.Context, id uuid.UUID) (Signature, error) {
	q := `SELECT ` + signatureColumns + ` FROM document_signatures WHERE id = $1`

	sig, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanSignature)
	if err != nil {
		return Signature{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return sig, nil
}

func (s *pgStore) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Signature, error) {
	q := `SELECT ` + signatureColumns + ` FROM document_signatures
		WHERE document_id = $1
		ORDER BY created_at`

	sigs, err := repository.QueryMany(ctx, s.db, q, []any{documentID}, scanSignature)
	if err != nil {
		return nil, fmt.Errorf("query signatures: %w", err)
	}
	return sigs, nil
}

func (s *pgStore) CountByStatus(ctx context.Context, documentID uuid.UUID, status Status) (int, error) {
	n, err := repository.QueryScalar[int](
		ctx, s.db,
		"SELECT COUNT(*) FROM document_signatures WHERE document_id = $1 AND status = $2",
		documentID, status,
	)
	if err != nil {
		return 0, fmt.Errorf("count signatures: %w", err)
	}
	return n, nil
}

func (s *pgStore) Insert(ctx context.Context, sig Signature) (Signature, error) {
	args := append([]any{sig.ID}, signatureArgs(sig)...)
	args = append(args, sig.CreatedBy)

	created, err := repository.QueryOne(ctx, s.db, insertSignatureSQL, args, scanSignature)
	if err != nil {
		return Signature{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return created, nil
}

func (s *pgStore) Update(ctx context.Context, sig Signature) (Signature, error) {
	updated, err := updateSignature(ctx, s.db, sig)
	if err != nil {
		return Signature{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return updated, nil
}

func (s *pgStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, s.db, "DELETE FROM document_signatures WHERE id = $1", id)
	return repository.MapError(err, ErrNotFound, ErrConflict)
}

func (s *pgStore) AttachRequest(ctx context.Context, sig Signature, req Request) (Signature, Request, error) {
	type attached struct {
		sig Signature
		req Request
	}

	a, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (attached, error) {
		updated, err := updateSignature(ctx, tx, sig)
		if err != nil {
			return attached{}, err
		}

		q := `
			INSERT INTO signature_requests(
				id, signature_id, reference, status, message, expiration_date, tenant_id,
				created_by, updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			RETURNING ` + requestColumns

		args := []any{
			req.ID,
			req.SignatureID,
			req.Reference,
			req.Status,
			req.Message,
			req.ExpirationDate,
			req.TenantID,
			req.CreatedBy,
		}

		created, err := repository.QueryOne(ctx, tx, q, args, scanRequest)
		if err != nil {
			return attached{}, err
		}

		return attached{sig: updated, req: created}, nil
	})

	if err != nil {
		return Signature{}, Request{}, repository.MapError(err, ErrNotFound, ErrConflict)
	}
	return a.sig, a.req, nil
}

func (s *pgStore) ApplyStatus(ctx context.Context, sig *Signature, req Request) (Request, error) {
	updated, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Request, error) {
		if sig != nil {
			if _, err := updateSignature(ctx, tx, *sig); err != nil {
				return Request{}, err
			}
		}
		return updateRequest(ctx, tx, req)
	})

	if err != nil {
		return Request{}, repository.MapError(err, ErrRequestNotFound, ErrConflict)
	}
	return updated, nil
}

func (s *pgStore) FindRequest(ctx context.Context, id uuid.UUID) (Request, error) {
	q := `SELECT ` + requestColumns + ` FROM signature_requests WHERE id = $1`

	r, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanRequest)
	if err != nil {
		return Request{}, repository.MapError(err, ErrRequestNotFound, ErrConflict)
	}
	return r, nil
}

func (s *pgStore) FindRequestByReference(ctx context.Context, reference string) (Request, error) {
	q := `SELECT ` + requestColumns + ` FROM signature_requests WHERE reference = $1`

	r, err := repository.QueryOne(ctx, s.db, q, []any{reference}, scanRequest)
	if err != nil {
		return Request{}, repository.MapError(err, ErrRequestNotFound, ErrConflict)
	}
	return r, nil
}

func (s *pgStore) ListRequests(ctx context.Context, signatureID uuid.UUID) ([]Request, error) {
	q := `SELECT ` + requestColumns + ` FROM signature_requests
		WHERE signature_id = $1
		ORDER BY created_at`

	reqs, err := repository.QueryMany(ctx, s.db, q, []any{signatureID}, scanRequest)
	if err != nil {
		return nil, fmt.Errorf("query signature requests: %w", err)
	}
	return reqs, nil
}

func (s *pgStore) UpdateRequest(ctx context.Context, req Request) (Request, error) {
	updated, err := updateRequest(ctx, s.db, req)
	if err != nil {
		return Request{}, repository.MapError(err, ErrRequestNotFound, ErrConflict)
	}
	return updated, nil
}

func (s *pgStore) ListExpired(ctx context.Context, now time.Time) ([]Request, error) {
	q := `SELECT ` + requestColumns + ` FROM signature_requests
		WHERE status = $1 AND expiration_date < $2
		ORDER BY expiration_date`

	reqs, err := repository.QueryMany(ctx, s.db, q, []any{StatusPending, now}, scanRequest)
	if err != nil {
		return nil, fmt.Errorf("query expired signature requests: %w", err)
	}
	return reqs, nil
}

func (s *pgStore) MarkNotified(ctx context.Context, id uuid.UUID, at time.Time) (Request, error) {
	q := `
		UPDATE signature_requests SET
			notification_sent = true,
			notification_sent_at = COALESCE(notification_sent_at, $2),
			updated_at = CASE WHEN notification_sent THEN updated_at ELSE now() END,
			row_version = CASE WHEN notification_sent THEN row_version ELSE row_version + 1 END
		WHERE id = $1
		RETURNING ` + requestColumns

	return s.mark(ctx, q, id, at)
}

func (s *pgStore) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) (Request, error) {
	q := `
		UPDATE signature_requests SET
			reminder_sent = true,
			reminder_sent_at = COALESCE(reminder_sent_at, $2),
			updated_at = CASE WHEN reminder_sent THEN updated_at ELSE now() END,
			row_version = CASE WHEN reminder_sent THEN row_version ELSE row_version + 1 END
		WHERE id = $1
		RETURNING ` + requestColumns

	return s.mark(ctx, q, id, at)
}

func (s *pgStore) mark(ctx context.Context, q string, id uuid.UUID, at time.Time) (Request, error) {
	r, err := repository.QueryOne(ctx, s.db, q, []any{id, at}, scanRequest)
	if err != nil {
		return Request{}, repository.MapError(err, ErrRequestNotFound, ErrConflict)
	}
	return r, nil
}

func updateSignature(ctx context.Context, q repository.Querier, sig Signature) (Signature, error) {
	args := append([]any{sig.ID, sig.RowVersion}, signatureArgs(sig)...)
	args = append(args, sig.UpdatedBy)

	return repository.QueryVersioned(ctx, q, updateSignatureSQL, args, scanSignature)
}

func updateRequest(ctx context.Context, q repository.Querier, req Request) (Request, error) {
	query := `
		UPDATE signature_requests SET
			reference = $3, status = $4, message = $5,
			notification_sent = notification_sent OR $6,
			notification_sent_at = COALESCE(notification_sent_at, $7),
			reminder_sent = reminder_sent OR $8,
			reminder_sent_at = COALESCE(reminder_sent_at, $9),
			expiration_date = $10, completed_at = $11, updated_by = $12,
			updated_at = now(), row_version = row_version + 1
		WHERE id = $1 AND row_version = $2
		RETURNING ` + requestColumns

	args := []any{
		req.ID,
		req.RowVersion,
		req.Reference,
		req.Status,
		req.Message,
		req.NotificationSent,
		req.NotificationSentAt,
		req.ReminderSent,
		req.ReminderSentAt,
		req.ExpirationDate,
		req.CompletedAt,
		req.UpdatedBy,
	}

	return repository.QueryVersioned(ctx, q, query, args, scanRequest)
}
