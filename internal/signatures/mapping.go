package signatures

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/signet/pkg/repository"
)

const signatureColumns = `id, document_id, document_version_id, signer_party_id, signer_name, signer_email,
	signature_type, signature_format, status, signature_data, certificate,
	page, position_x, position_y, width, height, reason, location, contact_info,
	expiration_date, signed_at, tenant_id,
	custom_message, language, time_zone, signer_role, signing_order, is_required, authentication_method,
	external_signer_id, signing_url, provider_metadata,
	created_at, created_by, updated_at, updated_by, row_version`

const requestColumns = `id, signature_id, reference, status, message,
	notification_sent, notification_sent_at, reminder_sent, reminder_sent_at,
	expiration_date, completed_at, tenant_id,
	created_at, created_by, updated_at, updated_by, row_version`

func scanSignature(s repository.Scanner) (Signature, error) {
	var sig Signature
	err := s.Scan(
		&sig.ID,
		&sig.DocumentID,
		&sig.DocumentVersionID,
		&sig.SignerPartyID,
		&sig.SignerName,
		&sig.SignerEmail,
		&sig.SignatureType,
		&sig.SignatureFormat,
		&sig.Status,
		&sig.SignatureData,
		&sig.Certificate,
		&sig.Page,
		&sig.PositionX,
		&sig.PositionY,
		&sig.Width,
		&sig.Height,
		&sig.Reason,
		&sig.Location,
		&sig.ContactInfo,
		&sig.ExpirationDate,
		&sig.SignedAt,
		&sig.TenantID,
		&sig.CustomMessage,
		&sig.Language,
		&sig.TimeZone,
		&sig.SignerRole,
		&sig.SigningOrder,
		&sig.Required,
		&sig.AuthenticationMethod,
		&sig.ExternalSignerID,
		&sig.SigningURL,
		&sig.ProviderMetadata,
		&sig.CreatedAt,
		&sig.CreatedBy,
		&sig.UpdatedAt,
		&sig.UpdatedBy,
		&sig.RowVersion,
	)
	return sig, err
}

func scanRequest(s repository.Scanner) (Request, error) {
	var r Request
	err := s.Scan(
		&r.ID,
		&r.SignatureID,
		&r.Reference,
		&r.Status,
		&r.Message,
		&r.NotificationSent,
		&r.NotificationSentAt,
		&r.ReminderSent,
		&r.ReminderSentAt,
		&r.ExpirationDate,
		&r.CompletedAt,
		&r.TenantID,
		&r.CreatedAt,
		&r.CreatedBy,
		&r.UpdatedAt,
		&r.UpdatedBy,
		&r.RowVersion,
	)
	return r, err
}

func signatureArgs(sig Signature) []any {
	return []any{
		sig.DocumentID,
		sig.DocumentVersionID,
		sig.SignerPartyID,
		sig.SignerName,
		sig.SignerEmail,
		sig.SignatureType,
		sig.SignatureFormat,
		sig.Status,
		sig.SignatureData,
		sig.Certificate,
		sig.Page,
		sig.PositionX,
		sig.PositionY,
		sig.Width,
		sig.Height,
		sig.Reason,
		sig.Location,
		sig.ContactInfo,
		sig.ExpirationDate,
		sig.SignedAt,
		sig.TenantID,
		sig.CustomMessage,
		sig.Language,
		sig.TimeZone,
		sig.SignerRole,
		sig.SigningOrder,
		sig.Required,
		sig.AuthenticationMethod,
		sig.ExternalSignerID,
		sig.SigningURL,
		sig.ProviderMetadata,
	}
}

// signatureFields are the writable columns in signatureArgs order.
var signatureFields = []string{
	"document_id", "document_version_id", "signer_party_id", "signer_name", "signer_email",
	"signature_type", "signature_format", "status", "signature_data", "certificate",
	"page", "position_x", "position_y", "width", "height", "reason", "location", "contact_info",
	"expiration_date", "signed_at", "tenant_id",
	"custom_message", "language", "time_zone", "signer_role", "signing_order", "is_required", "authentication_method",
	"external_signer_id", "signing_url", "provider_metadata",
}

var (
	insertSignatureSQL = buildInsert()
	updateSignatureSQL = buildUpdate()
)

// buildInsert binds id to $1, signatureFields to $2.., and created_by to the final parameter.
func buildInsert() string {
	n := len(signatureFields)
	values := make([]string, 0, n+3)
	values = append(values, "$1")
	for i := range n {
		values = append(values, fmt.Sprintf("$%d", i+2))
	}
	audit := fmt.Sprintf("$%d", n+2)
	values = append(values, audit, audit)

	return fmt.Sprintf(
		"INSERT INTO document_signatures(id, %s, created_by, updated_by) VALUES (%s) RETURNING %s",
		strings.Join(signatureFields, ", "),
		strings.Join(values, ", "),
		signatureColumns,
	)
}

// buildUpdate binds id to $1, row_version to $2, signatureFields to $3.., and
// updated_by to the final parameter.
func buildUpdate() string {
	n := len(signatureFields)
	sets := make([]string, 0, n+3)
	for i, f := range signatureFields {
		sets = append(sets, fmt.Sprintf("%s = $%d", f, i+3))
	}
	sets = append(sets,
		fmt.Sprintf("updated_by = $%d", n+3),
		"updated_at = now()",
		"row_version = row_version + 1",
	)

	return fmt.Sprintf(
		"UPDATE document_signatures SET %s WHERE id = $1 AND row_version = $2 RETURNING %s",
		strings.Join(sets, ", "),
		signatureColumns,
	)
}
