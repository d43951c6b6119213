package signatures

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for signature workflow operations.
type System interface {
	Handler() *Handler

	// Initiate validates sig, persists it as PENDING, and submits it to the
	// signature provider when one is configured. Provider failures leave the
	// local signature in place without external enrichment.
	Initiate(ctx context.Context, sig Signature) (*Signature, error)
	Find(ctx context.Context, id uuid.UUID) (*Signature, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Signature, error)
	Update(ctx context.Context, sig Signature) (*Signature, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Cancel fails with ErrIllegalState for SIGNED signatures.
	Cancel(ctx context.Context, id uuid.UUID) (*Signature, error)
	IsDocumentFullySigned(ctx context.Context, documentID uuid.UUID) (bool, error)

	FindRequest(ctx context.Context, id uuid.UUID) (*Request, error)
	ListRequests(ctx context.Context, signatureID uuid.UUID) ([]Request, error)
	SendNotification(ctx context.Context, requestID uuid.UUID) (*Request, error)
	SendReminder(ctx context.Context, requestID uuid.UUID) (*Request, error)
	ProcessExpiredRequests(ctx context.Context) ([]Request, error)
	// ApplyProviderStatus maps a provider status for the request with the given
	// reference and applies it where the state machine allows.
	ApplyProviderStatus(ctx context.Context, reference, externalStatus string) (*Request, error)
}
