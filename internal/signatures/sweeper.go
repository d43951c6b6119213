package signatures

import (
	"context"
	"log/slog"
	"time"

	"github.com/JaimeStill/signet/pkg/lifecycle"
)

// Sweeper periodically expires signature requests past their expiration date.
type Sweeper struct {
	sys      System
	interval time.Duration
	logger   *slog.Logger
}

func NewSweeper(sys System, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		sys:      sys,
		interval: interval,
		logger:   logger.With("worker", "signature-expiry"),
	}
}

// Start schedules the sweep on lc. A non-positive interval disables it.
func (s *Sweeper) Start(lc *lifecycle.Coordinator) {
	if s.interval <= 0 {
		s.logger.Info("expiry sweeper disabled")
		return
	}

	lc.Every(s.interval, s.Sweep)
	s.logger.Info("expiry sweeper scheduled", "interval", s.interval)
}

// Sweep runs one expiry pass. Errors are logged and the next tick retries.
func (s *Sweeper) Sweep(ctx context.Context) {
	expired, err := s.sys.ProcessExpiredRequests(ctx)
	if err != nil {
		s.logger.Error("expiry sweep failed", "error", err)
		return
	}
	if len(expired) > 0 {
		s.logger.Info("expiry sweep completed", "expired", len(expired))
	}
}
