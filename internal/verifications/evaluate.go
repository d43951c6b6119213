package verifications

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/internal/signatures"
)

// Evaluate synthesizes a verification of sig at now.
// Only certificate metadata is inspected; no cryptographic check is made.
func Evaluate(sig signatures.Signature, now time.Time) Verification {
	v := Verification{
		ID:          uuid.New(),
		SignatureID: sig.ID,
		Provider:    Provider,
		VerifiedAt:  now,
		TenantID:    sig.TenantID,
	}

	if sig.Status != signatures.StatusSigned {
		v.Status = StatusNotVerified
		v.Details = fmt.Sprintf("signature is %s", sig.Status)
		return v
	}

	v.DocumentIntegrityValid = true

	if sig.Certificate == "" {
		v.Status = StatusValid
		v.CertificateValid = true
		v.Details = "signed without certificate"
		return v
	}

	cert, err := parseCertificate(sig.Certificate)
	if err != nil {
		v.Status = StatusInvalid
		v.Details = err.Error()
		return v
	}

	v.CertificateSubject = cert.subject
	v.CertificateIssuer = cert.issuer
	v.CertificateValidFrom = &cert.validFrom
	v.CertificateValidUntil = &cert.validUntil

	if !cert.validAt(now) {
		v.Status = StatusInvalid
		v.Details = fmt.Sprintf(
			"certificate valid from %s until %s",
			cert.validFrom.Format(time.RFC3339),
			cert.validUntil.Format(time.RFC3339),
		)
		return v
	}

	v.Status = StatusValid
	v.CertificateValid = true
	v.Details = "certificate within validity window"
	return v
}
