package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/internal/capabilities"
)

// Permission is a permission provider client.
type Permission struct {
	client *Client
}

var _ capabilities.PermissionPort = (*Permission)(nil)

func NewPermission(client *Client) *Permission {
	return &Permission{client: client}
}

func (p *Permission) GrantPermission(ctx context.Context, d capabilities.PermissionDescriptor) error {
	return p.client.do(ctx, http.MethodPost, "/permissions", d, nil)
}

func (p *Permission) UpdatePermission(ctx context.Context, d capabilities.PermissionDescriptor) error {
	return p.client.do(ctx, http.MethodPut, "/permissions/"+d.ID.String(), d, nil)
}

func (p *Permission) RevokePermission(ctx context.Context, id uuid.UUID) error {
	return p.client.do(ctx, http.MethodDelete, "/permissions/"+id.String(), nil, nil)
}

func (p *Permission) HasPermission(
	ctx context.Context,
	resourceID uuid.UUID,
	resourceType string,
	principalID uuid.UUID,
	principalType string,
	permissionType string,
) (bool, error) {
	q := url.Values{}
	q.Set("resource_id", resourceID.String())
	q.Set("resource_type", resourceType)
	q.Set("principal_id", principalID.String())
	q.Set("principal_type", principalType)
	q.Set("permission_type", permissionType)

	var out struct {
		Granted bool `json:"granted"`
	}
	if err := p.client.do(ctx, http.MethodGet, "/permissions/check?"+q.Encode(), nil, &out); err != nil {
		return false, err
	}
	return out.Granted, nil
}
