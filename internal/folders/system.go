package folders

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for folder operations.
type System interface {
	Handler() *Handler

	Find(ctx context.Context, id uuid.UUID) (*Folder, error)
	// ListChildren returns the folders directly under parentID, or the root
	// folders of tenantID when parentID is nil.
	ListChildren(ctx context.Context, tenantID string, parentID *uuid.UUID) ([]Folder, error)
	Create(ctx context.Context, f Folder) (*Folder, error)
	// Update renames or moves f. Moving a folder beneath itself or one of its
	// descendants fails with ErrInvalidArgument.
	Update(ctx context.Context, f Folder) (*Folder, error)
	// Delete fails with ErrProtected for system folders and ErrNotEmpty while
	// subfolders remain. Documents in the folder move to the root.
	Delete(ctx context.Context, id uuid.UUID) error
}
