package verifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/internal/signatures"
)

// Signatures is the read access the engine needs to signature records.
// signatures.System satisfies it.
type Signatures interface {
	Find(ctx context.Context, id uuid.UUID) (*signatures.Signature, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]signatures.Signature, error)
}

// System defines the public contract for verification operations.
type System interface {
	Handler() *Handler

	VerifySignature(ctx context.Context, signatureID uuid.UUID) (*Verification, error)
	// VerifyAllForDocument verifies every signature of the document
	// independently. Per-signature failures are reported in the results.
	VerifyAllForDocument(ctx context.Context, documentID uuid.UUID) ([]BatchResult, error)
	Latest(ctx context.Context, signatureID uuid.UUID) (*Verification, error)
	Find(ctx context.Context, id uuid.UUID) (*Verification, error)
	ListBySignature(ctx context.Context, signatureID uuid.UUID) ([]Verification, error)
}
