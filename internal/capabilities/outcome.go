package capabilities

import (
	"context"
	"log/slog"
)

// Outcome classifies the result of an optional capability call made after
// local state was already written.
type Outcome int

const (
	// Skipped means the capability was not configured.
	Skipped Outcome = iota
	// Applied means the capability call succeeded.
	Applied
	// Failed means the call was attempted and returned an error. Local state
	// remains authoritative.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	default:
		return "skipped"
	}
}

// BestEffort runs fn when present is true and records the outcome in the log.
// Failures are logged at Warn and never returned.
func BestEffort(
	ctx context.Context,
	logger *slog.Logger,
	kind Kind,
	op string,
	present bool,
	fn func(ctx context.Context) error,
	attrs ...any,
) Outcome {
	if !present {
		logger.Debug("capability skipped", append([]any{"capability", kind, "op", op}, attrs...)...)
		return Skipped
	}

	if err := fn(ctx); err != nil {
		logger.Warn(
			"capability call failed, local state kept",
			append([]any{"capability", kind, "op", op, "error", err}, attrs...)...,
		)
		return Failed
	}

	logger.Debug("capability applied", append([]any{"capability", kind, "op", op}, attrs...)...)
	return Applied
}
