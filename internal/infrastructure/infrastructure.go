// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, optional storage and cache,
// capability ports, tenant defaults) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/signet/internal/adapters/blob"
	"github.com/JaimeStill/signet/internal/adapters/index"
	"github.com/JaimeStill/signet/internal/adapters/remote"
	"github.com/JaimeStill/signet/internal/capabilities"
	"github.com/JaimeStill/signet/internal/config"
	"github.com/JaimeStill/signet/internal/tenants"
	"github.com/JaimeStill/signet/pkg/cache"
	"github.com/JaimeStill/signet/pkg/database"
	"github.com/JaimeStill/signet/pkg/lifecycle"
	"github.com/JaimeStill/signet/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Storage and Cache are nil when no enabled capability needs them.
type Infrastructure struct {
	Lifecycle    *lifecycle.Coordinator
	Logger       *slog.Logger
	Database     database.System
	Storage      storage.System
	Cache        cache.System
	Capabilities *capabilities.Registry
	Tenants      tenants.Provider
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Tenants:   tenants.NewProvider(&cfg.Tenants),
	}

	for _, w := range cfg.Tenants.Warnings() {
		logger.Warn("tenant configuration", "warning", w)
	}

	var ports capabilities.Ports

	if cfg.Capabilities.NeedsStorage() {
		store, err := storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
		infra.Storage = store

		adapter := blob.New(store, logger)
		if cfg.Capabilities.Content {
			ports.Content = adapter
		}
		if cfg.Capabilities.Version {
			ports.Version = adapter
		}
	}

	if cfg.Capabilities.NeedsCache() {
		infra.Cache = cache.New(&cfg.Cache, logger)
		ports.Search = index.New(infra.Cache, logger)
	}

	if sc := cfg.Capabilities.Signature; sc.Enabled {
		client := remote.NewClient(sc.BaseURL, sc.Token, sc.TimeoutDuration())
		ports.Signature = remote.NewSignature(client)
	}

	if pc := cfg.Capabilities.Permission; pc.Enabled {
		client := remote.NewClient(pc.BaseURL, pc.Token, pc.TimeoutDuration())
		ports.Permission = remote.NewPermission(client)
	}

	infra.Capabilities = capabilities.NewRegistry(ports)
	logger.Info("capabilities configured", "available", infra.Capabilities.Available())

	return infra, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}
	if i.Cache != nil {
		if err := i.Cache.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("cache start failed: %w", err)
		}
	}
	return nil
}
