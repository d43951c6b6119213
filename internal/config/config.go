// Package config loads the service configuration from config.toml, an
// optional environment overlay, and SIGNET_ environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/signet/internal/tenants"
	"github.com/JaimeStill/signet/pkg/cache"
	"github.com/JaimeStill/signet/pkg/database"
	"github.com/JaimeStill/signet/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvSignetEnv             = "SIGNET_ENV"
	EnvSignetShutdownTimeout = "SIGNET_SHUTDOWN_TIMEOUT"
	EnvSignetVersion         = "SIGNET_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "SIGNET_DB_HOST",
	Port:            "SIGNET_DB_PORT",
	Name:            "SIGNET_DB_NAME",
	User:            "SIGNET_DB_USER",
	Password:        "SIGNET_DB_PASSWORD",
	SSLMode:         "SIGNET_DB_SSL_MODE",
	MaxOpenConns:    "SIGNET_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "SIGNET_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "SIGNET_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "SIGNET_DB_CONN_TIMEOUT",
	ApplicationName: "SIGNET_DB_APPLICATION_NAME",
}

var storageEnv = &storage.Env{
	ContainerName:    "SIGNET_STORAGE_CONTAINER_NAME",
	ConnectionString: "SIGNET_STORAGE_CONNECTION_STRING",
	AccountURL:       "SIGNET_STORAGE_ACCOUNT_URL",
	VersionPrefix:    "SIGNET_STORAGE_VERSION_PREFIX",
}

var cacheEnv = &cache.Env{
	Addr:        "SIGNET_CACHE_ADDR",
	Password:    "SIGNET_CACHE_PASSWORD",
	DB:          "SIGNET_CACHE_DB",
	KeyPrefix:   "SIGNET_CACHE_KEY_PREFIX",
	DialTimeout: "SIGNET_CACHE_DIAL_TIMEOUT",
}

var tenantsEnv = &tenants.Env{
	CustomMessage:        "SIGNET_TENANT_CUSTOM_MESSAGE",
	Language:             "SIGNET_TENANT_LANGUAGE",
	TimeZone:             "SIGNET_TENANT_TIME_ZONE",
	SignerRole:           "SIGNET_TENANT_SIGNER_ROLE",
	AuthenticationMethod: "SIGNET_TENANT_AUTHENTICATION_METHOD",
	ExpirationDays:       "SIGNET_TENANT_EXPIRATION_DAYS",
	SecurityLevel:        "SIGNET_TENANT_SECURITY_LEVEL",
	RetentionDays:        "SIGNET_TENANT_RETENTION_DAYS",
}

// Config is the root configuration for the Signet service.
// Storage and Cache are finalized only when a capability that needs them is enabled.
type Config struct {
	Server          ServerConfig       `toml:"server"`
	Database        database.Config    `toml:"database"`
	Storage         storage.Config     `toml:"storage"`
	Cache           cache.Config       `toml:"cache"`
	API             APIConfig          `toml:"api"`
	Capabilities    CapabilitiesConfig `toml:"capabilities"`
	Tenants         tenants.Config     `toml:"tenants"`
	Sweeper         SweeperConfig      `toml:"sweeper"`
	ShutdownTimeout string             `toml:"shutdown_timeout"`
	Version         string             `toml:"version"`
}

// Env returns the SIGNET_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvSignetEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Parse decodes TOML data into a Config without finalizing it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Cache.Merge(&overlay.Cache)
	c.API.Merge(&overlay.API)
	c.Capabilities.Merge(&overlay.Capabilities)
	c.Tenants.Merge(&overlay.Tenants)
	c.Sweeper.Merge(&overlay.Sweeper)
}

// Finalize applies defaults, environment overrides, and validation to every section.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Capabilities.Finalize(); err != nil {
		return fmt.Errorf("capabilities: %w", err)
	}
	if c.Capabilities.NeedsStorage() {
		if err := c.Storage.Finalize(storageEnv); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	}
	if c.Capabilities.NeedsCache() {
		if err := c.Cache.Finalize(cacheEnv); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Tenants.Finalize(tenantsEnv); err != nil {
		return fmt.Errorf("tenants: %w", err)
	}
	if err := c.Sweeper.Finalize(); err != nil {
		return fmt.Errorf("sweeper: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvSignetShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvSignetVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func overlayPath() string {
	if env := os.Getenv(EnvSignetEnv); env != "" {
		overlayPath := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(overlayPath); err == nil {
			return overlayPath
		}
	}
	return ""
}
