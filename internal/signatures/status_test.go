package signatures_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/signet/internal/signatures"
)

func TestValidateStatusMapping(t *testing.T) {
	require.NoError(t, signatures.ValidateStatusMapping())
}

func TestStatusRoundTrip(t *testing.T) {
	for _, s := range signatures.Statuses {
		ext, ok := signatures.ToExternal(s)
		require.True(t, ok, "ToExternal(%s) missing", s)
		assert.Equal(t, s, signatures.FromExternal(ext), "FromExternal(%s)", ext)
	}
}

func TestFromExternal(t *testing.T) {
	tests := map[string]signatures.Status{
		"COMPLETED": signatures.StatusSigned,
		"signed":    signatures.StatusSigned,
		" viewed ":  signatures.StatusInProgress,
		"CANCELED":  signatures.StatusCanceled,
		"CANCELLED": signatures.StatusCanceled,
		"VOIDED":    signatures.StatusRevoked,
		"teleport":  signatures.DefaultLocalStatus,
		"":          signatures.DefaultLocalStatus,
	}

	for ext, want := range tests {
		assert.Equal(t, want, signatures.FromExternal(ext), "FromExternal(%q)", ext)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to signatures.Status
		want     bool
	}{
		{signatures.StatusPending, signatures.StatusInProgress, true},
		{signatures.StatusPending, signatures.StatusSigned, true},
		{signatures.StatusPending, signatures.StatusPending, false},
		{signatures.StatusInProgress, signatures.StatusSigned, true},
		{signatures.StatusInProgress, signatures.StatusPending, false},
		{signatures.StatusSigned, signatures.StatusRevoked, false},
		{signatures.StatusExpired, signatures.StatusPending, false},
		{signatures.StatusPending, "UNKNOWN", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range signatures.Statuses {
		want := s != signatures.StatusPending && s != signatures.StatusInProgress
		assert.Equal(t, want, s.Terminal(), "%s.Terminal()", s)
	}
}
