package providers

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

// New creates the signature provider System over store.
func New(store Store, logger *slog.Logger) System {
	return &manager{
		store:  store,
		logger: logger.With("system", "providers"),
	}
}

func (m *manager) Handler() *Handler {
	return NewHandler(m, m.logger)
}

func (m *manager) Find(ctx context.Context, id uuid.UUID) (*Provider, error) {
	p, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *manager) List(ctx context.Context, tenantID string) ([]Provider, error) {
	return m.store.List(ctx, tenantID)
}

func (m *manager) Default(ctx context.Context, tenantID string) (*Provider, error) {
	p, err := m.store.FindDefault(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *manager) Create(ctx context.Context, p Provider) (*Provider, error) {
	if p.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: id is assigned by the server", ErrInvalidArgument)
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	p.ID = uuid.New()
	p.Default = false
	p.UpdatedBy = p.CreatedBy

	created, err := m.store.Insert(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create signature provider: %w", err)
	}

	m.logger.Info("signature provider created", "id", created.ID, "code", created.Code, "tenant_id", created.TenantID)
	return &created, nil
}

func (m *manager) Update(ctx context.Context, p Provider) (*Provider, error) {
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
	if existing.Default && !p.Active {
		return nil, fmt.Errorf("%w: the default provider cannot be deactivated", ErrConflict)
	}

	next := existing
	next.Name = p.Name
	next.Description = p.Description
	next.Code = p.Code
	next.Active = p.Active
	next.UpdatedBy = p.UpdatedBy
	if p.RowVersion != 0 {
		next.RowVersion = p.RowVersion
	}

	updated, err := m.store.Update(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("update signature provider %s: %w", p.ID, err)
	}

	m.logger.Info("signature provider updated", "id", updated.ID, "active", updated.Active)
	return &updated, nil
}

func (m *manager) SetDefault(ctx context.Context, id uuid.UUID, updatedBy string) (*Provider, error) {
	p, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, fmt.Errorf("%w: %s", ErrInactive, p.Code)
	}
	if p.Default {
		return &p, nil
	}

	updated, err := m.store.MarkDefault(ctx, id, p.TenantID, updatedBy)
	if err != nil {
		return nil, fmt.Errorf("set default signature provider %s: %w", id, err)
	}

	m.logger.Info("default signature provider changed", "id", id, "code", updated.Code, "tenant_id", updated.TenantID)
	return &updated, nil
}

func (m *manager) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := m.store.Find(ctx, id); err != nil {
		return err
	}

	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete signature provider %s: %w", id, err)
	}

	m.logger.Info("signature provider deleted", "id", id)
	return nil
}

func validate(p Provider) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidArgument)
	}
	if strings.TrimSpace(p.Code) == "" {
		return fmt.Errorf("%w: provider_code required", ErrInvalidArgument)
	}
	return nil
}
