package permissions

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for permission operations.
type System interface {
	Handler() *Handler

	Find(ctx context.Context, id uuid.UUID) (*Permission, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Permission, error)
	Create(ctx context.Context, p Permission) (*Permission, error)
	Update(ctx context.Context, p Permission) (*Permission, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// HasPermission is answered by the permission capability only and fails
	// with capabilities.ErrUnavailable when none is configured.
	HasPermission(ctx context.Context, documentID, principalID uuid.UUID, t Type) (bool, error)
}
