// Package signatures drives electronic signature workflows: initiating
// requests at a signature provider, cancellation, notification and reminder
// tracking, expiry, and applying provider status updates through an explicit
// state machine.
package signatures

import (
	"time"

	"github.com/google/uuid"
)

// Signature is a request for one signer to sign a document.
//
// The pointer override fields are optional per-request values that take
// precedence over tenant defaults. ExternalSignerID and SigningURL are written
// only after the signature provider accepts the request.
type Signature struct {
	ID                uuid.UUID  `json:"id"`
	DocumentID        uuid.UUID  `json:"document_id"`
	DocumentVersionID *uuid.UUID `json:"document_version_id,omitempty"`
	SignerPartyID     *uuid.UUID `json:"signer_party_id,omitempty"`
	SignerName        string     `json:"signer_name"`
	SignerEmail       string     `json:"signer_email"`
	SignatureType     string     `json:"signature_type,omitempty"`
	SignatureFormat   string     `json:"signature_format,omitempty"`
	Status            Status     `json:"status"`
	SignatureData     string     `json:"signature_data,omitempty"`
	Certificate       string     `json:"certificate,omitempty"`
	Page              *int       `json:"page,omitempty"`
	PositionX         *float64   `json:"position_x,omitempty"`
	PositionY         *float64   `json:"position_y,omitempty"`
	Width             *float64   `json:"width,omitempty"`
	Height            *float64   `json:"height,omitempty"`
	Reason            string     `json:"reason,omitempty"`
	Location          string     `json:"location,omitempty"`
	ContactInfo       string     `json:"contact_info,omitempty"`
	ExpirationDate    *time.Time `json:"expiration_date,omitempty"`
	SignedAt          *time.Time `json:"signed_at,omitempty"`
	TenantID          string     `json:"tenant_id,omitempty"`

	CustomMessage        *string `json:"custom_message,omitempty"`
	Language             *string `json:"language,omitempty"`
	TimeZone             *string `json:"time_zone,omitempty"`
	SignerRole           *string `json:"signer_role,omitempty"`
	SigningOrder         *int    `json:"signing_order,omitempty"`
	Required             *bool   `json:"required,omitempty"`
	AuthenticationMethod *string `json:"authentication_method,omitempty"`

	ExternalSignerID string `json:"external_signer_id,omitempty"`
	SigningURL       string `json:"signing_url,omitempty"`
	ProviderMetadata string `json:"provider_metadata,omitempty"`

	CreatedAt  time.Time `json:"created_at"`
	CreatedBy  string    `json:"created_by,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
	UpdatedBy  string    `json:"updated_by,omitempty"`
	RowVersion int64     `json:"row_version"`
}

// Request tracks one external signing workflow instance for a signature.
// NotificationSent and ReminderSent only ever change from false to true.
type Request struct {
	ID                 uuid.UUID  `json:"id"`
	SignatureID        uuid.UUID  `json:"signature_id"`
	Reference          string     `json:"reference"`
	Status             Status     `json:"status"`
	Message            string     `json:"message,omitempty"`
	NotificationSent   bool       `json:"notification_sent"`
	NotificationSentAt *time.Time `json:"notification_sent_at,omitempty"`
	ReminderSent       bool       `json:"reminder_sent"`
	ReminderSentAt     *time.Time `json:"reminder_sent_at,omitempty"`
	ExpirationDate     *time.Time `json:"expiration_date,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	TenantID           string     `json:"tenant_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	CreatedBy          string     `json:"created_by,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
	UpdatedBy          string     `json:"updated_by,omitempty"`
	RowVersion         int64      `json:"row_version"`
}
