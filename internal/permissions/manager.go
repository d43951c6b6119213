package permissions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/internal/capabilities"
)

type manager struct {
	store    Store
	registry *capabilities.Registry
	logger   *slog.Logger
}

// New creates the permission System over store and the permission capability
// in registry.
func New(store Store, registry *capabilities.Registry, logger *slog.Logger) System {
	return &manager{
		store:    store,
		registry: registry,
		logger:   logger.With("system", "permissions"),
	}
}

func (m *manager) Handler() *Handler {
	return NewHandler(m, m.logger)
}

func (m *manager) Find(ctx context.Context, id uuid.UUID) (*Permission, error) {
	p, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *manager) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Permission, error) {
	return m.store.ListByDocument(ctx, documentID)
}

func (m *manager) Create(ctx context.Context, p Permission) (*Permission, error) {
	if p.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: id is assigned by the server", ErrInvalidArgument)
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	p.ID = uuid.New()
	p.UpdatedBy = p.CreatedBy

	port, ok := m.registry.Permission()
	capabilities.BestEffort(
		ctx, m.logger, capabilities.KindPermission, "grant", ok,
		func(ctx context.Context) error {
			return port.GrantPermission(ctx, descriptor(p))
		},
		"id", p.ID, "document_id", p.DocumentID,
	)

	created, err := m.store.Insert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create permission: %w", err)
	}

	m.logger.Info("permission created", "id", created.ID, "document_id", created.DocumentID, "type", created.Type)
	return &created, nil
}

func (m *manager) Update(ctx context.Context, p Permission) (*Permission, error) {
	if p.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: id required for update", ErrInvalidArgument)
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	existing, err := m.store.Find(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = existing.CreatedAt
	p.CreatedBy = existing.CreatedBy
	if p.RowVersion == 0 {
		p.RowVersion = existing.RowVersion
	}

	port, ok := m.registry.Permission()
	capabilities.BestEffort(
		ctx, m.logger, capabilities.KindPermission, "update", ok,
		func(ctx context.Context) error {
			return port.UpdatePermission(ctx, descriptor(p))
		},
		"id", p.ID,
	)

	updated, err := m.store.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update permission %s: %w", p.ID, err)
	}

	m.logger.Info("permission updated", "id", updated.ID)
	return &updated, nil
}

func (m *manager) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := m.store.Find(ctx, id); err != nil {
		return err
	}

	port, ok := m.registry.Permission()
	capabilities.BestEffort(
		ctx, m.logger, capabilities.KindPermission, "revoke", ok,
		func(ctx context.Context) error {
			return port.RevokePermission(ctx, id)
		},
		"id", id,
	)

	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete permission %s: %w", id, err)
	}

	m.logger.Info("permission deleted", "id", id)
	return nil
}

func (m *manager) HasPermission(ctx context.Context, documentID, principalID uuid.UUID, t Type) (bool, error) {
	if !t.Valid() {
		return false, fmt.Errorf("%w: unknown permission type %q", ErrInvalidArgument, t)
	}

	port, ok := m.registry.Permission()
	if !ok {
		return false, capabilities.Unavailable(capabilities.KindPermission)
	}

	granted, err := port.HasPermission(
		ctx,
		documentID,
		capabilities.ResourceDocument,
		principalID,
		capabilities.PrincipalUser,
		string(t),
	)
	if err != nil {
		return false, fmt.Errorf("check permission: %w", err)
	}
	return granted, nil
}

func validate(p Permission) error {
	if p.DocumentID == uuid.Nil {
		return fmt.Errorf("%w: document_id required", ErrInvalidArgument)
	}
	if p.PrincipalID == uuid.Nil {
		return fmt.Errorf("%w: principal_id required", ErrInvalidArgument)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown permission type %q", ErrInvalidArgument, p.Type)
	}
	return nil
}

func descriptor(p Permission) capabilities.PermissionDescriptor {
	return capabilities.PermissionDescriptor{
		ID:             p.ID,
		ResourceID:     p.DocumentID,
		ResourceType:   capabilities.ResourceDocument,
		PrincipalID:    p.PrincipalID,
		PrincipalType:  capabilities.PrincipalUser,
		PermissionType: string(p.Type),
		Granted:        p.Granted,
		ExpiresAt:      p.ExpiresAt,
		TenantID:       p.TenantID,
	}
}
