package signatures_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/signet/internal/signatures"
)

func TestValidate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(s *signatures.Signature)
		wantErr string
	}{
		{"valid overrides", func(s *signatures.Signature) {
			s.Language = ptr("en")
			s.SigningOrder = ptr(100)
			s.SignerRole = ptr("Notary")
			s.AuthenticationMethod = ptr("ACCESS_CODE")
			s.ExpirationDate = ptr(now.AddDate(0, 6, 0))
			s.CustomMessage = ptr(strings.Repeat("é", 1000))
		}, ""},
		{"unknown language", func(s *signatures.Signature) { s.Language = ptr("xx") }, "language"},
		{"three letter language", func(s *signatures.Signature) { s.Language = ptr("eng") }, "language"},
		{"order zero", func(s *signatures.Signature) { s.SigningOrder = ptr(0) }, "signing order"},
		{"order too high", func(s *signatures.Signature) { s.SigningOrder = ptr(101) }, "signing order"},
		{"unknown role", func(s *signatures.Signature) { s.SignerRole = ptr("signer") }, "signer role"},
		{"unknown method", func(s *signatures.Signature) { s.AuthenticationMethod = ptr("RETINA") }, "authentication method"},
		{"expired", func(s *signatures.Signature) { s.ExpirationDate = ptr(now.Add(-time.Second)) }, "in the past"},
		{"too far", func(s *signatures.Signature) { s.ExpirationDate = ptr(now.AddDate(1, 0, 1)) }, "one year"},
		{"long message", func(s *signatures.Signature) { s.CustomMessage = ptr(strings.Repeat("a", 1001)) }, "custom message"},
		{"long metadata", func(s *signatures.Signature) { s.ProviderMetadata = strings.Repeat("a", 5001) }, "provider metadata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := newSignature()
			tt.mutate(&sig)

			violations := signatures.Validate(sig, now)

			if tt.wantErr == "" {
				assert.Empty(t, violations)
				return
			}
			require.Len(t, violations, 1)
			assert.Contains(t, violations[0], tt.wantErr)
		})
	}
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := error(&signatures.ValidationError{Violations: []string{"a", "b"}})

	assert.ErrorIs(t, err, signatures.ErrValidation)
	assert.Contains(t, err.Error(), "a; b")
}
