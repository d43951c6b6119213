package signatures

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
)

const (
	maxSigningOrder     = 100
	maxCustomMessage    = 1000
	maxProviderMetadata = 5000
)

// SignerRoles and AuthenticationMethods are the accepted override values.
var (
	SignerRoles           = []string{"Signer", "Approver", "Reviewer", "Witness", "Notary", "CC"}
	AuthenticationMethods = []string{"EMAIL", "SMS", "PHONE", "ACCESS_CODE", "ID_CHECK", "NONE"}
)

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("signature parameters failed validation")

// ValidationError carries every violated rule for a signature.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate checks the override fields of sig against now and returns one
// message per violated rule. Absent fields are not checked.
func Validate(sig Signature, now time.Time) []string {
	var violations []string

	if sig.Language != nil && !validLanguage(*sig.Language) {
		violations = append(violations, fmt.Sprintf(
			"invalid language code %q: must be a two-letter ISO 639-1 code", *sig.Language))
	}

	if sig.SigningOrder != nil && (*sig.SigningOrder < 1 || *sig.SigningOrder > maxSigningOrder) {
		violations = append(violations, fmt.Sprintf(
			"signing order must be between 1 and %d, got %d", maxSigningOrder, *sig.SigningOrder))
	}

	if sig.SignerRole != nil && !slices.Contains(SignerRoles, *sig.SignerRole) {
		violations = append(violations, fmt.Sprintf(
			"invalid signer role %q: must be one of %s", *sig.SignerRole, strings.Join(SignerRoles, ", ")))
	}

	if sig.AuthenticationMethod != nil && !slices.Contains(AuthenticationMethods, *sig.AuthenticationMethod) {
		violations = append(violations, fmt.Sprintf(
			"invalid authentication method %q: must be one of %s",
			*sig.AuthenticationMethod, strings.Join(AuthenticationMethods, ", ")))
	}

	if sig.ExpirationDate != nil {
		exp := *sig.ExpirationDate
		if exp.Before(now) {
			violations = append(violations, fmt.Sprintf(
				"expiration date %s is in the past", exp.Format(time.RFC3339)))
		}
		if exp.After(now.AddDate(1, 0, 0)) {
			violations = append(violations, fmt.Sprintf(
				"expiration date %s is more than one year in the future", exp.Format(time.RFC3339)))
		}
	}

	if sig.CustomMessage != nil {
		if n := utf8.RuneCountInString(*sig.CustomMessage); n > maxCustomMessage {
			violations = append(violations, fmt.Sprintf(
				"custom message cannot exceed %d characters, got %d", maxCustomMessage, n))
		}
	}

	if n := utf8.RuneCountInString(sig.ProviderMetadata); n > maxProviderMetadata {
		violations = append(violations, fmt.Sprintf(
			"provider metadata cannot exceed %d characters, got %d", maxProviderMetadata, n))
	}

	return violations
}

func validLanguage(code string) bool {
	if len(code) != 2 {
		return false
	}
	base, err := language.ParseBase(strings.ToLower(code))
	if err != nil {
		return false
	}
	return base.ISO3() != ""
}
