package capabilities

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// ContentPort stores and retrieves document content keyed by document id.
type ContentPort interface {
	// StoreContent writes data and returns the storage locator.
	StoreContent(ctx context.Context, id uuid.UUID, data []byte, mimeType string) (string, error)
	// GetContentStream opens the stored content. The caller must close the reader.
	GetContentStream(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
	DeleteContent(ctx context.Context, id uuid.UUID) error
}

// VersionType records how a version was produced.
type VersionType string

const (
	VersionManual    VersionType = "MANUAL"
	VersionAutomatic VersionType = "AUTOMATIC"
)

// VersionDescriptor describes a version snapshot exchanged with a VersionPort.
type VersionDescriptor struct {
	ID            uuid.UUID
	DocumentID    uuid.UUID
	VersionNumber int
	Label         string
	Comment       string
	Type          VersionType
	Current       bool
	Major         bool
	FileName      string
	MimeType      string
	FileSize      int64
	Checksum      string
	StoragePath   string
	CreatedAt     time.Time
	CreatedBy     string
}

// VersionPort creates and removes version snapshots together with their content.
type VersionPort interface {
	// CreateVersion writes data as a new version and returns the descriptor
	// with StoragePath set. A Current version also becomes the content the
	// ContentPort serves for the document.
	CreateVersion(ctx context.Context, version VersionDescriptor, data []byte) (VersionDescriptor, error)
	DeleteVersion(ctx context.Context, id uuid.UUID) error
}

// IndexedDocument is the searchable projection of a document.
type IndexedDocument struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	FileName      string     `json:"file_name,omitempty"`
	MimeType      string     `json:"mime_type,omitempty"`
	DocumentType  string     `json:"document_type"`
	SecurityLevel string     `json:"security_level"`
	Status        string     `json:"status"`
	Version       int        `json:"version"`
	FolderID      *uuid.UUID `json:"folder_id,omitempty"`
	TenantID      string     `json:"tenant_id,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// SearchPort maintains a full-text index of documents.
type SearchPort interface {
	IndexDocument(ctx context.Context, doc IndexedDocument) error
	RemoveFromIndex(ctx context.Context, id uuid.UUID) error
}

// SignatureRequestDescriptor is the resolved request sent to a signature provider.
// ID is the local signature id and keys every later call for the request.
type SignatureRequestDescriptor struct {
	ID                   uuid.UUID  `json:"id"`
	DocumentID           uuid.UUID  `json:"document_id"`
	DocumentVersionID    *uuid.UUID `json:"document_version_id,omitempty"`
	SignerPartyID        *uuid.UUID `json:"signer_party_id,omitempty"`
	SignerName           string     `json:"signer_name"`
	SignerEmail          string     `json:"signer_email"`
	SignatureType        string     `json:"signature_type,omitempty"`
	SignatureFormat      string     `json:"signature_format,omitempty"`
	Page                 *int       `json:"page,omitempty"`
	PositionX            *float64   `json:"position_x,omitempty"`
	PositionY            *float64   `json:"position_y,omitempty"`
	Width                *float64   `json:"width,omitempty"`
	Height               *float64   `json:"height,omitempty"`
	Reason               string     `json:"reason,omitempty"`
	Location             string     `json:"location,omitempty"`
	CustomMessage        string     `json:"custom_message"`
	Language             string     `json:"language"`
	TimeZone             string     `json:"time_zone"`
	SignerRole           string     `json:"signer_role"`
	SigningOrder         int        `json:"signing_order"`
	Required             bool       `json:"required"`
	AuthenticationMethod string     `json:"authentication_method"`
	ExpirationDate       time.Time  `json:"expiration_date"`
	SendReminders        bool       `json:"send_reminders"`
	ReminderIntervalDays int        `json:"reminder_interval_days"`
	TenantID             string     `json:"tenant_id,omitempty"`
	// ProviderCode routes the request to the tenant's default provider. Empty
	// leaves the choice to the adapter.
	ProviderCode string `json:"provider_code,omitempty"`
}

// ExternalSignature is a provider's response to a created signature request.
type ExternalSignature struct {
	ExternalID string `json:"external_id"`
	SigningURL string `json:"signing_url,omitempty"`
}

// SignaturePort executes signature requests at an external provider.
type SignaturePort interface {
	CreateSignatureRequest(ctx context.Context, req SignatureRequestDescriptor) (ExternalSignature, error)
	ResendNotification(ctx context.Context, id uuid.UUID) error
	DeleteSignatureRequest(ctx context.Context, id uuid.UUID) error
}

// Resource and principal types understood by permission providers.
const (
	ResourceDocument = "DOCUMENT"
	PrincipalUser    = "USER"
)

// PermissionDescriptor is a permission grant exchanged with a PermissionPort.
type PermissionDescriptor struct {
	ID             uuid.UUID  `json:"id"`
	ResourceID     uuid.UUID  `json:"resource_id"`
	ResourceType   string     `json:"resource_type"`
	PrincipalID    uuid.UUID  `json:"principal_id"`
	PrincipalType  string     `json:"principal_type"`
	PermissionType string     `json:"permission_type"`
	Granted        bool       `json:"granted"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	TenantID       string     `json:"tenant_id,omitempty"`
}

// PermissionPort enforces and answers permission checks.
type PermissionPort interface {
	GrantPermission(ctx context.Context, p PermissionDescriptor) error
	UpdatePermission(ctx context.Context, p PermissionDescriptor) error
	RevokePermission(ctx context.Context, id uuid.UUID) error
	HasPermission(
		ctx context.Context,
		resourceID uuid.UUID,
		resourceType string,
		principalID uuid.UUID,
		principalType string,
		permissionType string,
	) (bool, error)
}
