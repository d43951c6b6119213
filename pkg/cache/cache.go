// Package cache provides a Redis client with lifecycle coordination.
package cache

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/signet/pkg/lifecycle"
)

// System manages a Redis client and its lifecycle.
type System interface {
	// Client returns the underlying Redis client.
	Client() *redis.Client
	// Key namespaces a key with the configured prefix.
	Key(parts ...string) string
	// Start registers startup (ping) and shutdown (close) hooks.
	Start(lc *lifecycle.Coordinator) error
	// Ready reports whether the startup ping succeeded.
	Ready() bool
}

type cache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
	ready  atomic.Bool
}

// New creates a cache system. No connection is made until Start is called.
func New(cfg *Config, logger *slog.Logger) System {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeoutDuration(),
	})

	return &cache{
		client: client,
		prefix: cfg.KeyPrefix,
		logger: logger.With("system", "cache"),
	}
}

func (c *cache) Client() *redis.Client {
	return c.client
}

func (c *cache) Key(parts ...string) string {
	key := c.prefix
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += p
	}
	return key
}

func (c *cache) Ready() bool {
	return c.ready.Load()
}

func (c *cache) Start(lc *lifecycle.Coordinator) error {
	c.logger.Info("starting cache connection")

	lc.OnStartup(func() {
		if err := c.ping(lc.Context()); err != nil {
			c.logger.Error("cache ping failed", "error", err)
			return
		}
		c.ready.Store(true)
		c.logger.Info("cache connection established", "addr", c.client.Options().Addr)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		c.ready.Store(false)
		c.logger.Info("closing cache connection")

		if err := c.client.Close(); err != nil {
			c.logger.Error("cache close failed", "error", err)
			return
		}

		c.logger.Info("cache connection closed")
	})

	return nil
}

func (c *cache) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.client.Options().DialTimeout)
	defer cancel()
	return c.client.Ping(ctx).Err()
}
