package config

import (
	"fmt"
	"os"
	"time"
)

const EnvSweeperInterval = "SIGNET_SWEEPER_INTERVAL"

// SweeperConfig controls the background expiry of signature requests.
// An interval of "0" disables the sweep.
type SweeperConfig struct {
	Interval string `toml:"interval"`
}

// IntervalDuration returns Interval as a time.Duration.
func (c *SweeperConfig) IntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.Interval)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *SweeperConfig) Finalize() error {
	if c.Interval == "" {
		c.Interval = "1h"
	}
	if v := os.Getenv(EnvSweeperInterval); v != "" {
		c.Interval = v
	}
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("invalid interval: %s is negative", c.Interval)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *SweeperConfig) Merge(overlay *SweeperConfig) {
	if overlay.Interval != "" {
		c.Interval = overlay.Interval
	}
}
