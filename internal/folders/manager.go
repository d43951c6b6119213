package folders

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type manager struct {
	store  Store
	logger *slog.Logger
}

// New creates the folder System over store.
func New(store Store, logger *slog.Logger) System {
	return &manager{
		store:  store,
		logger: logger.With("system", "folders"),
	}
}

func (m *manager) Handler() *Handler {
	return NewHandler(m, m.logger)
}

func (m *manager) Find(ctx context.Context, id uuid.UUID) (*Folder, error) {
	f, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (m *manager) ListChildren(ctx context.Context, tenantID string, parentID *uuid.UUID) ([]Folder, error) {
	return m.store.ListChildren(ctx, tenantID, parentID)
}

func (m *manager) Create(ctx context.Context, f Folder) (*Folder, error) {
	if f.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: id is assigned by the server", ErrInvalidArgument)
	}
	if err := validateName(f.Name); err != nil {
		return nil, err
	}

	parent, err := m.parent(ctx, f.ParentID)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		f.TenantID = parent.TenantID
	}

	f.ID = uuid.New()
	f.Path = childPath(parent, f.Name)
	f.UpdatedBy = f.CreatedBy

	created, err := m.store.Insert(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}

	m.logger.Info("folder created", "id", created.ID, "path", created.Path)
	return &created, nil
}

func (m *manager) Update(ctx context.Context, f Folder) (*Folder, error) {
	if f.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: id required for update", ErrInvalidArgument)
	}
	if err := validateName(f.Name); err != nil {
		return nil, err
	}

	existing, err := m.store.Find(ctx, f.ID)
	if err != nil {
		return nil, err
	}

	parent, err := m.parent(ctx, f.ParentID)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		if parent.TenantID != existing.TenantID {
			return nil, fmt.Errorf("%w: parent belongs to another tenant", ErrInvalidArgument)
		}
		if err := m.checkAncestry(ctx, f.ID, parent); err != nil {
			return nil, err
		}
	}

	next := existing
	next.Name = f.Name
	next.Description = f.Description
	next.ParentID = f.ParentID
	next.SecurityLevel = f.SecurityLevel
	next.UpdatedBy = f.UpdatedBy
	next.Path = childPath(parent, f.Name)
	if f.RowVersion != 0 {
		next.RowVersion = f.RowVersion
	}

	updated, err := m.store.Update(ctx, next, existing.Path)
	if err != nil {
		return nil, fmt.Errorf("update folder %s: %w", f.ID, err)
	}

	if updated.Path != existing.Path {
		m.logger.Info("folder moved", "id", updated.ID, "from", existing.Path, "to", updated.Path)
	} else {
		m.logger.Info("folder updated", "id", updated.ID)
	}
	return &updated, nil
}

func (m *manager) Delete(ctx context.Context, id uuid.UUID) error {
	f, err := m.store.Find(ctx, id)
	if err != nil {
		return err
	}
	if f.System {
		return fmt.Errorf("%w: %s", ErrProtected, f.Path)
	}

	n, err := m.store.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %s holds %d", ErrNotEmpty, f.Path, n)
	}

	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete folder %s: %w", id, err)
	}

	m.logger.Info("folder deleted", "id", id, "path", f.Path)
	return nil
}

func (m *manager) parent(ctx context.Context, id *uuid.UUID) (*Folder, error) {
	if id == nil {
		return nil, nil
	}
	p, err := m.store.Find(ctx, *id)
	if err != nil {
		return nil, fmt.Errorf("parent folder %s: %w", *id, err)
	}
	return &p, nil
}

// checkAncestry rejects a parent that is id itself or lies beneath it.
func (m *manager) checkAncestry(ctx context.Context, id uuid.UUID, parent *Folder) error {
	current := parent
	for range maxDepth {
		if current.ID == id {
			return fmt.Errorf("%w: folder cannot be moved beneath itself", ErrInvalidArgument)
		}
		if current.ParentID == nil {
			return nil
		}
		next, err := m.store.Find(ctx, *current.ParentID)
		if err != nil {
			return fmt.Errorf("resolve ancestor %s: %w", *current.ParentID, err)
		}
		current = &next
	}
	return fmt.Errorf("%w: folder nesting exceeds %d levels", ErrInvalidArgument, maxDepth)
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidArgument)
	}
	if strings.Contains(name, Separator) {
		return fmt.Errorf("%w: name cannot contain %q", ErrInvalidArgument, Separator)
	}
	return nil
}
