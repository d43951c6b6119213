package verifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/signet/internal/signatures"
)

const defaultBatchLimit = 8

type engine struct {
	store      Store
	signatures Signatures
	logger     *slog.Logger
	now        func() time.Time
	batchLimit int
}

// New creates the verification System.
func New(store Store, sigs Signatures, logger *slog.Logger) System {
	return &engine{
		store:      store,
		signatures: sigs,
		logger:     logger.With("system", "verifications"),
		now:        time.Now,
		batchLimit: defaultBatchLimit,
	}
}

func (e *engine) Handler() *Handler {
	return NewHandler(e, e.logger)
}

func (e *engine) VerifySignature(ctx context.Context, signatureID uuid.UUID) (*Verification, error) {
	sig, err := e.signatures.Find(ctx, signatureID)
	if err != nil {
		if errors.Is(err, signatures.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSignatureNotFound, signatureID)
		}
		return nil, err
	}

	return e.verify(ctx, *sig)
}

func (e *engine) verify(ctx context.Context, sig signatures.Signature) (*Verification, error) {
	v, err := e.store.Insert(ctx, Evaluate(sig, e.now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("record verification for signature %s: %w", sig.ID, err)
	}

	e.logger.Info("signature verified", "signature_id", sig.ID, "status", v.Status)
	return &v, nil
}

func (e *engine) VerifyAllForDocument(ctx context.Context, documentID uuid.UUID) ([]BatchResult, error) {
	sigs, err := e.signatures.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	results := make([]BatchResult, len(sigs))

	var g errgroup.Group
	g.SetLimit(e.batchLimit)

	for i, sig := range sigs {
		g.Go(func() error {
			results[i].SignatureID = sig.ID

			v, err := e.verify(ctx, sig)
			if err != nil {
				e.logger.Warn("signature verification failed", "signature_id", sig.ID, "error", err)
				results[i].Error = err.Error()
				return nil
			}
			results[i].Verification = v
			return nil
		})
	}
	g.Wait()

	return results, nil
}

func (e *engine) Latest(ctx context.Context, signatureID uuid.UUID) (*Verification, error) {
	return e.store.Latest(ctx, signatureID)
}

func (e *engine) Find(ctx context.Context, id uuid.UUID) (*Verification, error) {
	v, err := e.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (e *engine) ListBySignature(ctx context.Context, signatureID uuid.UUID) ([]Verification, error) {
	return e.store.ListBySignature(ctx, signatureID)
}
