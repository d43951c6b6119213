package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/signet/pkg/formatting"
	"github.com/JaimeStill/signet/pkg/middleware"
)

const (
	EnvAPIBasePath      = "SIGNET_API_BASE_PATH"
	EnvAPIMaxUploadSize = "SIGNET_API_MAX_UPLOAD_SIZE"

	defaultMaxUploadSize = 50 * 1024 * 1024
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SIGNET_CORS_ENABLED",
	Origins:          "SIGNET_CORS_ORIGINS",
	AllowedMethods:   "SIGNET_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SIGNET_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "SIGNET_CORS_EXPOSED_HEADERS",
	AllowCredentials: "SIGNET_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SIGNET_CORS_MAX_AGE",
}

// APIConfig holds API routing, upload limits, and CORS settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return defaultMaxUploadSize
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS config.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	c.CORS.Merge(&overlay.CORS)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}
}
