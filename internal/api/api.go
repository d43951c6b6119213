// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/signet/internal/config"
	"github.com/JaimeStill/signet/internal/infrastructure"
	"github.com/JaimeStill/signet/internal/signatures"
	"github.com/JaimeStill/signet/pkg/middleware"
	"github.com/JaimeStill/signet/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The signature expiry sweeper is registered on the lifecycle coordinator.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	if err := signatures.ValidateStatusMapping(); err != nil {
		return nil, fmt.Errorf("signature status mapping: %w", err)
	}

	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	signatures.NewSweeper(
		domain.Signatures,
		cfg.Sweeper.IntervalDuration(),
		runtime.Logger,
	).Start(runtime.Lifecycle)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Recover(runtime.Logger))

	return m, nil
}
