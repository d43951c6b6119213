package providers

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for signature provider operations.
type System interface {
	Handler() *Handler

	Find(ctx context.Context, id uuid.UUID) (*Provider, error)
	List(ctx context.Context, tenantID string) ([]Provider, error)
	// Default returns the tenant's default provider, or ErrNotFound when the
	// tenant has none.
	Default(ctx context.Context, tenantID string) (*Provider, error)
	// Create registers a provider. New providers are never the default.
	Create(ctx context.Context, p Provider) (*Provider, error)
	// Update changes descriptive fields and activation. The default flag is
	// only changed through SetDefault.
	Update(ctx context.Context, p Provider) (*Provider, error)
	// SetDefault makes id the default of its tenant, clearing the previous
	// default in the same transaction.
	SetDefault(ctx context.Context, id uuid.UUID, updatedBy string) (*Provider, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
