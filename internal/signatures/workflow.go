package signatures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/internal/capabilities"
	"github.com/JaimeStill/signet/internal/providers"
	"github.com/JaimeStill/signet/internal/tenants"
)

const (
	requestMessage    = "Signature request created"
	defaultBatchLimit = 8
	systemActor       = "system"
)

// ProviderDirectory resolves a tenant's default signature provider.
type ProviderDirectory interface {
	Default(ctx context.Context, tenantID string) (*providers.Provider, error)
}

type workflow struct {
	store      Store
	registry   *capabilities.Registry
	tenants    tenants.Provider
	directory  ProviderDirectory
	logger     *slog.Logger
	now        func() time.Time
	batchLimit int
}

// New creates the signature System. directory may be nil, in which case
// requests carry no provider code.
func New(
	store Store,
	registry *capabilities.Registry,
	tenants tenants.Provider,
	directory ProviderDirectory,
	logger *slog.Logger,
) System {
	return &workflow{
		store:      store,
		registry:   registry,
		tenants:    tenants,
		directory:  directory,
		logger:     logger.With("system", "signatures"),
		now:        time.Now,
		batchLimit: defaultBatchLimit,
	}
}

func (w *workflow) Handler() *Handler {
	return NewHandler(w, w.logger)
}

func (w *workflow) Initiate(ctx context.Context, sig Signature) (*Signature, error) {
	now := w.now().UTC()

	if violations := Validate(sig, now); len(violations) > 0 {
		w.logger.Warn("signature validation failed", "violations", len(violations))
		return nil, &ValidationError{Violations: violations}
	}
	if sig.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: id is assigned by the server", ErrInvalidArgument)
	}
	if sig.DocumentID == uuid.Nil {
		return nil, fmt.Errorf("%w: document_id required", ErrInvalidArgument)
	}
	if sig.SignerEmail == "" {
		return nil, fmt.Errorf("%w: signer_email required", ErrInvalidArgument)
	}

	sig.ID = uuid.New()
	sig.Status = StatusPending
	sig.SignedAt = nil
	sig.ExternalSignerID = ""
	sig.SigningURL = ""
	sig.UpdatedBy = sig.CreatedBy

	created, err := w.store.Insert(ctx, sig)
	if err != nil {
		return nil, fmt.Errorf("create signature: %w", err)
	}

	port, ok := w.registry.Signature()
	if !ok {
		w.logger.Warn(
			"signature provider not configured, signing must be completed out of band",
			"id", created.ID,
			"outcome", capabilities.Skipped,
		)
		return &created, nil
	}

	params := Resolve(created, w.tenants.Defaults(created.TenantID).Signature, now)

	desc := Descriptor(created, params)
	desc.ProviderCode = w.providerCode(ctx, created.TenantID)

	ext, err := port.CreateSignatureRequest(ctx, desc)
	if err != nil {
		w.logger.Warn(
			"signature provider request failed, continuing with local signature",
			"id", created.ID,
			"outcome", capabilities.Failed,
			"error", err,
		)
		return &created, nil
	}

	withProvider := created
	withProvider.ExternalSignerID = ext.ExternalID
	if ext.SigningURL != "" {
		withProvider.SigningURL = ext.SigningURL
	}

	expiration := params.ExpirationDate
	req := Request{
		ID:             uuid.New(),
		SignatureID:    created.ID,
		Reference:      ext.ExternalID,
		Status:         StatusPending,
		Message:        requestMessage,
		ExpirationDate: &expiration,
		TenantID:       created.TenantID,
		CreatedBy:      created.CreatedBy,
	}

	enriched, request, err := w.store.AttachRequest(ctx, withProvider, req)
	if err != nil {
		w.logger.Error(
			"provider accepted request but recording it failed, continuing with local signature",
			"id", created.ID,
			"reference", ext.ExternalID,
			"outcome", capabilities.Failed,
			"error", err,
		)
		return &created, nil
	}

	w.logger.Info(
		"signature initiated",
		"id", enriched.ID,
		"document_id", enriched.DocumentID,
		"request_id", request.ID,
		"outcome", capabilities.Applied,
	)
	return &enriched, nil
}

func (w *workflow) Find(ctx context.Context, id uuid.UUID) (*Signature, error) {
	sig, err := w.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &sig, nil
}

func (w *workflow) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Signature, error) {
	return w.store.ListByDocument(ctx, documentID)
}

func (w *workflow) Update(ctx context.Context, sig Signature) (*Signature, error) {
	if sig.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: id required for update", ErrInvalidArgument)
	}

	existing, err := w.store.Find(ctx, sig.ID)
	if err != nil {
		return nil, err
	}

	if existing.Status.Terminal() {
		return nil, fmt.Errorf("%w: %s signature cannot be modified", ErrIllegalState, existing.Status)
	}

	// The expiration window applies only to a newly supplied date.
	checked := sig
	if sameInstant(sig.ExpirationDate, existing.ExpirationDate) {
		checked.ExpirationDate = nil
	}
	if violations := Validate(checked, w.now().UTC()); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	if sig.Status == "" {
		sig.Status = existing.Status
	}
	if sig.Status != existing.Status && !existing.Status.CanTransition(sig.Status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrIllegalState, existing.Status, sig.Status)
	}

	sig.DocumentID = existing.DocumentID
	sig.ExternalSignerID = existing.ExternalSignerID
	sig.SigningURL = existing.SigningURL
	sig.CreatedAt = existing.CreatedAt
	sig.CreatedBy = existing.CreatedBy
	if sig.RowVersion == 0 {
		sig.RowVersion = existing.RowVersion
	}
	if sig.Status == StatusSigned && sig.SignedAt == nil {
		signedAt := w.now().UTC()
		sig.SignedAt = &signedAt
	}

	updated, err := w.store.Update(ctx, sig)
	if err != nil {
		return nil, fmt.Errorf("update signature %s: %w", sig.ID, err)
	}

	w.logger.Info("signature updated", "id", updated.ID, "status", updated.Status)
	return &updated, nil
}

func (w *workflow) Delete(ctx context.Context, id uuid.UUID) error {
	if err := w.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete signature %s: %w", id, err)
	}

	w.logger.Info("signature deleted", "id", id)
	return nil
}

func (w *workflow) Cancel(ctx context.Context, id uuid.UUID) (*Signature, error) {
	sig, err := w.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if sig.Status == StatusSigned {
		return nil, fmt.Errorf("%w: cannot cancel a signed signature", ErrIllegalState)
	}

	sig.Status = StatusCanceled
	canceled, err := w.store.Update(ctx, sig)
	if err != nil {
		return nil, fmt.Errorf("cancel signature %s: %w", id, err)
	}

	port, ok := w.registry.Signature()
	outcome := capabilities.BestEffort(
		ctx, w.logger, capabilities.KindSignature, "cancel", ok,
		func(ctx context.Context) error {
			return port.DeleteSignatureRequest(ctx, id)
		},
		"id", id,
	)

	w.logger.Info("signature canceled", "id", id, "outcome", outcome)
	return &canceled, nil
}

func (w *workflow) IsDocumentFullySigned(ctx context.Context, documentID uuid.UUID) (bool, error) {
	pending, err := w.store.CountByStatus(ctx, documentID, StatusPending)
	if err != nil {
		return false, err
	}
	if pending > 0 {
		return false, nil
	}

	signed, err := w.store.CountByStatus(ctx, documentID, StatusSigned)
	if err != nil {
		return false, err
	}
	return signed > 0, nil
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// providerCode returns the code of tenantID's default provider, or "" when
// none is registered or the lookup fails.
func (w *workflow) providerCode(ctx context.Context, tenantID string) string {
	if w.directory == nil {
		return ""
	}

	p, err := w.directory.Default(ctx, tenantID)
	switch {
	case errors.Is(err, providers.ErrNotFound):
		w.logger.Debug("no default signature provider", "tenant_id", tenantID)
		return ""
	case err != nil:
		w.logger.Warn("default signature provider lookup failed", "tenant_id", tenantID, "error", err)
		return ""
	}
	return p.Code
}
