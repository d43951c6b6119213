package api

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/signet/internal/capabilities"
	"github.com/JaimeStill/signet/pkg/handlers"
	"github.com/JaimeStill/signet/pkg/routes"
)

type capabilitiesHandler struct {
	registry *capabilities.Registry
	version  string
	logger   *slog.Logger
}

type capabilityStatus struct {
	Kind      capabilities.Kind `json:"kind"`
	Available bool              `json:"available"`
}

type capabilitiesResponse struct {
	Version      string             `json:"version"`
	Capabilities []capabilityStatus `json:"capabilities"`
}

func newCapabilitiesHandler(
	registry *capabilities.Registry,
	version string,
	logger *slog.Logger,
) *capabilitiesHandler {
	return &capabilitiesHandler{
		registry: registry,
		version:  version,
		logger:   logger.With("handler", "capabilities"),
	}
}

func (h *capabilitiesHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/capabilities",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.list},
		},
	}
}

func (h *capabilitiesHandler) list(w http.ResponseWriter, r *http.Request) {
	resp := capabilitiesResponse{Version: h.version}
	for _, kind := range capabilities.Kinds {
		_, ok := h.registry.Lookup(kind)
		resp.Capabilities = append(resp.Capabilities, capabilityStatus{
			Kind:      kind,
			Available: ok,
		})
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
