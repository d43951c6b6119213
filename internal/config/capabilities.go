package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// RemoteConfig describes an HTTP provider backing a capability port.
type RemoteConfig struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
	Timeout string `toml:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *RemoteConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// RemoteEnv maps RemoteConfig fields to environment variable names.
type RemoteEnv struct {
	Enabled string
	BaseURL string
	Token   string
	Timeout string
}

func (c *RemoteConfig) merge(overlay *RemoteConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *RemoteConfig) finalize(env *RemoteEnv) error {
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if v := os.Getenv(env.Enabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v := os.Getenv(env.BaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(env.Token); v != "" {
		c.Token = v
	}
	if v := os.Getenv(env.Timeout); v != "" {
		c.Timeout = v
	}

	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if !c.Enabled {
		return nil
	}
	if c.BaseURL == "" {
		return errors.New("base_url required when enabled")
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base_url: %q", c.BaseURL)
	}
	return nil
}

var (
	signatureEnv = &RemoteEnv{
		Enabled: "SIGNET_SIGNATURE_ENABLED",
		BaseURL: "SIGNET_SIGNATURE_BASE_URL",
		Token:   "SIGNET_SIGNATURE_TOKEN",
		Timeout: "SIGNET_SIGNATURE_TIMEOUT",
	}
	permissionEnv = &RemoteEnv{
		Enabled: "SIGNET_PERMISSION_ENABLED",
		BaseURL: "SIGNET_PERMISSION_BASE_URL",
		Token:   "SIGNET_PERMISSION_TOKEN",
		Timeout: "SIGNET_PERMISSION_TIMEOUT",
	}
)

const (
	EnvCapabilityContent = "SIGNET_CONTENT_ENABLED"
	EnvCapabilityVersion = "SIGNET_VERSION_ENABLED"
	EnvCapabilitySearch  = "SIGNET_SEARCH_ENABLED"
)

// CapabilitiesConfig selects which optional capability ports are registered.
// Content and Version are served by blob storage, Search by the cache.
type CapabilitiesConfig struct {
	Content    bool         `toml:"content"`
	Version    bool         `toml:"version"`
	Search     bool         `toml:"search"`
	Signature  RemoteConfig `toml:"signature"`
	Permission RemoteConfig `toml:"permission"`
}

// NeedsStorage reports whether blob storage must be configured.
func (c *CapabilitiesConfig) NeedsStorage() bool {
	return c.Content || c.Version
}

// NeedsCache reports whether the cache must be configured.
func (c *CapabilitiesConfig) NeedsCache() bool {
	return c.Search
}

// Finalize applies environment variable overrides and validation.
func (c *CapabilitiesConfig) Finalize() error {
	c.Content = envBool(EnvCapabilityContent, c.Content)
	c.Version = envBool(EnvCapabilityVersion, c.Version)
	c.Search = envBool(EnvCapabilitySearch, c.Search)

	if err := c.Signature.finalize(signatureEnv); err != nil {
		return fmt.Errorf("signature: %w", err)
	}
	if err := c.Permission.finalize(permissionEnv); err != nil {
		return fmt.Errorf("permission: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay. Enable flags only turn on.
func (c *CapabilitiesConfig) Merge(overlay *CapabilitiesConfig) {
	c.Content = c.Content || overlay.Content
	c.Version = c.Version || overlay.Version
	c.Search = c.Search || overlay.Search
	c.Signature.merge(&overlay.Signature)
	c.Permission.merge(&overlay.Permission)
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
