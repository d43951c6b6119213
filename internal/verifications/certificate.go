package verifications

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
	"time"
)

var errNoCertificate = errors.New("no PEM certificate block")

// certificate is the metadata read from a signer certificate.
type certificate struct {
	subject    string
	issuer     string
	validFrom  time.Time
	validUntil time.Time
}

func (c certificate) validAt(t time.Time) bool {
	return !t.Before(c.validFrom) && !t.After(c.validUntil)
}

// parseCertificate reads the first CERTIFICATE block of text.
// Bare base64 DER without PEM armor is accepted.
func parseCertificate(text string) (certificate, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "-----BEGIN") {
		text = "-----BEGIN CERTIFICATE-----\n" + text + "\n-----END CERTIFICATE-----"
	}

	rest := []byte(text)
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			return certificate{}, errNoCertificate
		}
		if block.Type != "CERTIFICATE" {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return certificate{}, fmt.Errorf("parse certificate: %w", err)
		}

		return certificate{
			subject:    cert.Subject.String(),
			issuer:     cert.Issuer.String(),
			validFrom:  cert.NotBefore.UTC(),
			validUntil: cert.NotAfter.UTC(),
		}, nil
	}
}
