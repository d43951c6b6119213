package main

import (
	"net/http"

	"github.com/JaimeStill/signet/internal/api"
	"github.com/JaimeStill/signet/internal/config"
	"github.com/JaimeStill/signet/internal/infrastructure"
	"github.com/JaimeStill/signet/pkg/handlers"
	"github.com/JaimeStill/signet/pkg/lifecycle"
	"github.com/JaimeStill/signet/pkg/module"
)

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

type readiness struct {
	Status string          `json:"status"`
	Checks map[string]bool `json:"checks"`
}

// readinessChecks reports the subsystems whose readiness gates traffic.
// Storage has no probe of its own; container creation runs as a startup hook.
func readinessChecks(infra *infrastructure.Infrastructure) map[string]lifecycle.ReadinessChecker {
	checks := map[string]lifecycle.ReadinessChecker{
		"lifecycle": infra.Lifecycle,
		"database":  infra.Database,
	}
	if infra.Cache != nil {
		checks["cache"] = infra.Cache
	}
	return checks
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()
	checks := readinessChecks(infra)

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		resp := readiness{Status: "ready", Checks: make(map[string]bool, len(checks))}
		code := http.StatusOK
		for name, c := range checks {
			ok := c.Ready()
			resp.Checks[name] = ok
			if !ok {
				resp.Status = "not ready"
				code = http.StatusServiceUnavailable
			}
		}
		handlers.RespondJSON(w, code, resp)
	})

	return router
}
