// Package verifications records signature verification attempts and answers
// which verification is current for a signature.
package verifications

import (
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of a verification attempt.
type Status string

const (
	StatusValid         Status = "VALID"
	StatusInvalid       Status = "INVALID"
	StatusIndeterminate Status = "INDETERMINATE"
	StatusInProgress    Status = "IN_PROGRESS"
	StatusFailed        Status = "FAILED"
	StatusNotVerified   Status = "NOT_VERIFIED"
)

// Provider names the verifier recorded on locally synthesized verifications.
const Provider = "signet"

// Verification is one verification attempt for a signature.
// The record with the latest VerifiedAt is authoritative.
type Verification struct {
	ID                     uuid.UUID  `json:"id"`
	SignatureID            uuid.UUID  `json:"signature_id"`
	Status                 Status     `json:"status"`
	Provider               string     `json:"provider"`
	CertificateValid       bool       `json:"certificate_valid"`
	CertificateSubject     string     `json:"certificate_subject,omitempty"`
	CertificateIssuer      string     `json:"certificate_issuer,omitempty"`
	CertificateValidFrom   *time.Time `json:"certificate_valid_from,omitempty"`
	CertificateValidUntil  *time.Time `json:"certificate_valid_until,omitempty"`
	DocumentIntegrityValid bool       `json:"document_integrity_valid"`
	Details                string     `json:"details,omitempty"`
	VerifiedAt             time.Time  `json:"verified_at"`
	TenantID               string     `json:"tenant_id,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
}

// BatchResult reports the verification of one signature in a document batch.
// Exactly one of Verification and Error is set.
type BatchResult struct {
	SignatureID  uuid.UUID     `json:"signature_id"`
	Verification *Verification `json:"verification,omitempty"`
	Error        string        `json:"error,omitempty"`
}
