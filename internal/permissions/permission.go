// Package permissions manages document permission grants. Writes are mirrored
// to the permission capability when one is configured; checks are answered by
// that capability alone.
package permissions

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Type is a permission kind that may be granted on a document.
type Type string

const (
	Read              Type = "READ"
	Write             Type = "WRITE"
	Delete            Type = "DELETE"
	Share             Type = "SHARE"
	Execute           Type = "EXECUTE"
	Create            Type = "CREATE"
	Move              Type = "MOVE"
	Copy              Type = "COPY"
	ViewMetadata      Type = "VIEW_METADATA"
	ModifyMetadata    Type = "MODIFY_METADATA"
	ViewVersions      Type = "VIEW_VERSIONS"
	CreateVersion     Type = "CREATE_VERSION"
	ViewAudit         Type = "VIEW_AUDIT"
	ManagePermissions Type = "MANAGE_PERMISSIONS"
	Checkout          Type = "CHECKOUT"
	Checkin           Type = "CHECKIN"
	Sign              Type = "SIGN"
	SendForSignature  Type = "SEND_FOR_SIGNATURE"
	Admin             Type = "ADMIN"
)

var types = []Type{
	Read, Write, Delete, Share, Execute, Create, Move, Copy,
	ViewMetadata, ModifyMetadata, ViewVersions, CreateVersion, ViewAudit,
	ManagePermissions, Checkout, Checkin, Sign, SendForSignature, Admin,
}

// Valid reports whether t is a known permission type.
func (t Type) Valid() bool {
	return slices.Contains(types, t)
}

// Permission grants or denies one permission type on a document to a principal.
type Permission struct {
	ID          uuid.UUID  `json:"id"`
	DocumentID  uuid.UUID  `json:"document_id"`
	PrincipalID uuid.UUID  `json:"principal_id"`
	Type        Type       `json:"permission_type"`
	Granted     bool       `json:"granted"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	TenantID    string     `json:"tenant_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   string     `json:"created_by,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
	UpdatedBy   string     `json:"updated_by,omitempty"`
	RowVersion  int64      `json:"row_version"`
}
