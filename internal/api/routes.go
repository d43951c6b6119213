package api

import (
	"net/http"

	"github.com/JaimeStill/signet/internal/config"
	"github.com/JaimeStill/signet/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Documents.Handler(runtime.MaxUploadSize).Routes(),
		domain.Folders.Handler().Routes(),
		domain.Permissions.Handler().Routes(),
		domain.Signatures.Handler().Routes(),
		domain.Providers.Handler().Routes(),
		domain.Verifications.Handler().Routes(),
		newCapabilitiesHandler(runtime.Capabilities, cfg.Version, runtime.Logger).routes(),
	)
}
