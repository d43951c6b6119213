package verifications

import "github.com/JaimeStill/signet/pkg/repository"

const columns = `id, signature_id, status, provider,
	certificate_valid, certificate_subject, certificate_issuer,
	certificate_valid_from, certificate_valid_until,
	document_integrity_valid, details, verified_at, tenant_id, created_at`

func scanVerification(s repository.Scanner) (Verification, error) {
	var v Verification
	err := s.Scan(
		&v.ID,
		&v.SignatureID,
		&v.Status,
		&v.Provider,
		&v.CertificateValid,
		&v.CertificateSubject,
		&v.CertificateIssuer,
		&v.CertificateValidFrom,
		&v.CertificateValidUntil,
		&v.DocumentIntegrityValid,
		&v.Details,
		&v.VerifiedAt,
		&v.TenantID,
		&v.CreatedAt,
	)
	return v, err
}
