package signatures_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/signet/internal/signatures"
)

func TestSweeperSweep(t *testing.T) {
	store := newMemoryStore()
	sys := newSystem(store, nil)
	_, req := seedRequest(store, signatures.StatusPending, signatures.StatusPending, time.Now().Add(-time.Minute))

	sweeper := signatures.NewSweeper(sys, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	sweeper.Sweep(context.Background())

	got, err := sys.FindRequest(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, signatures.StatusExpired, got.Status)
}
