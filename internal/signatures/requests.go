package signatures

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/signet/internal/capabilities"
)

func (w *workflow) FindRequest(ctx context.Context, id uuid.UUID) (*Request, error) {
	req, err := w.store.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (w *workflow) ListRequests(ctx context.Context, signatureID uuid.UUID) ([]Request, error) {
	if _, err := w.store.Find(ctx, signatureID); err != nil {
		return nil, err
	}
	return w.store.ListRequests(ctx, signatureID)
}

func (w *workflow) SendNotification(ctx context.Context, requestID uuid.UUID) (*Request, error) {
	return w.resend(ctx, requestID, "notify", w.store.MarkNotified)
}

func (w *workflow) SendReminder(ctx context.Context, requestID uuid.UUID) (*Request, error) {
	return w.resend(ctx, requestID, "remind", w.store.MarkReminded)
}

type markFunc func(ctx context.Context, id uuid.UUID, at time.Time) (Request, error)

// resend asks the provider to resend for the owning signature and records the
// first send locally whatever the provider outcome.
func (w *workflow) resend(ctx context.Context, requestID uuid.UUID, op string, mark markFunc) (*Request, error) {
	req, err := w.store.FindRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	port, ok := w.registry.Signature()
	outcome := capabilities.BestEffort(
		ctx, w.logger, capabilities.KindSignature, op, ok,
		func(ctx context.Context) error {
			return port.ResendNotification(ctx, req.SignatureID)
		},
		"request_id", req.ID,
		"signature_id", req.SignatureID,
	)

	marked, err := mark(ctx, req.ID, w.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%s signature request %s: %w", op, req.ID, err)
	}

	w.logger.Info("signature request resent", "request_id", marked.ID, "op", op, "outcome", outcome)
	return &marked, nil
}

func (w *workflow) ProcessExpiredRequests(ctx context.Context) ([]Request, error) {
	now := w.now().UTC()

	due, err := w.store.ListExpired(ctx, now)
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		return []Request{}, nil
	}

	var (
		mu      sync.Mutex
		expired = make([]Request, 0, len(due))
		failed  int
	)

	var g errgroup.Group
	g.SetLimit(w.batchLimit)

	for _, req := range due {
		g.Go(func() error {
			req.Status = StatusExpired
			req.CompletedAt = &now
			req.UpdatedBy = systemActor

			updated, err := w.store.UpdateRequest(ctx, req)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				expired = append(expired, updated)
			case errors.Is(err, ErrConflict), errors.Is(err, ErrRequestNotFound):
				w.logger.Info("signature request changed before expiry, skipped", "request_id", req.ID)
			default:
				failed++
				w.logger.Error("expire signature request failed", "request_id", req.ID, "error", err)
			}
			return nil
		})
	}
	g.Wait()

	w.logger.Info(
		"expired signature requests processed",
		"due", len(due),
		"expired", len(expired),
		"failed", failed,
	)
	return expired, nil
}

func (w *workflow) ApplyProviderStatus(ctx context.Context, reference, externalStatus string) (*Request, error) {
	if reference == "" {
		return nil, fmt.Errorf("%w: reference required", ErrInvalidArgument)
	}

	target := FromExternal(externalStatus)

	req, err := w.store.FindRequestByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if !req.Status.CanTransition(target) {
		w.logger.Info(
			"provider status ignored",
			"request_id", req.ID,
			"current", req.Status,
			"target", target,
		)
		return &req, nil
	}

	now := w.now().UTC()
	req.Status = target
	if target.Terminal() {
		req.CompletedAt = &now
	}

	var sig *Signature
	owner, err := w.store.Find(ctx, req.SignatureID)
	switch {
	case err == nil:
		if owner.Status.CanTransition(target) {
			owner.Status = target
			if target == StatusSigned {
				owner.SignedAt = &now
			}
			sig = &owner
		}
	case errors.Is(err, ErrNotFound):
	default:
		return nil, err
	}

	updated, err := w.store.ApplyStatus(ctx, sig, req)
	if err != nil {
		return nil, fmt.Errorf("apply provider status to request %s: %w", req.ID, err)
	}

	w.logger.Info(
		"provider status applied",
		"request_id", updated.ID,
		"status", updated.Status,
		"signature_updated", sig != nil,
	)
	return &updated, nil
}
