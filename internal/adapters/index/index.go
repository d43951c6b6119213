// Package index provides the search capability as Redis hashes, one per document.
package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/JaimeStill/signet/internal/capabilities"
	"github.com/JaimeStill/signet/pkg/cache"
)

// Client is the subset of the Redis API the index writes with.
type Client interface {
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	SAdd(ctx context.Context, key string, members ...any) *redis.IntCmd
	SRem(ctx context.Context, key string, members ...any) *redis.IntCmd
}

// Index maintains a hash per document and a per-tenant membership set.
// It satisfies capabilities.SearchPort.
type Index struct {
	client Client
	key    func(parts ...string) string
	logger *slog.Logger
}

var _ capabilities.SearchPort = (*Index)(nil)

// New creates an Index over the cache system's client and key namespace.
func New(c cache.System, logger *slog.Logger) *Index {
	return NewWithClient(c.Client(), c.Key, logger)
}

// NewWithClient creates an Index over client, namespacing keys with key.
func NewWithClient(client Client, key func(parts ...string) string, logger *slog.Logger) *Index {
	return &Index{
		client: client,
		key:    key,
		logger: logger.With("adapter", "index"),
	}
}

// DocumentKey returns the hash key for a document.
func (i *Index) DocumentKey(id uuid.UUID) string {
	return i.key("documents", id.String())
}

// TenantKey returns the membership set key for a tenant.
func (i *Index) TenantKey(tenantID string) string {
	if tenantID == "" {
		tenantID = "_"
	}
	return i.key("tenants", tenantID, "documents")
}

// IndexDocument writes the document hash and moves its tenant membership when
// the tenant changed since the last write.
func (i *Index) IndexDocument(ctx context.Context, doc capabilities.IndexedDocument) error {
	values, err := Fields(doc)
	if err != nil {
		return err
	}

	key := i.DocumentKey(doc.ID)

	previous, err := i.client.HGet(ctx, key, "tenant_id").Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return fmt.Errorf("read indexed document %s: %w", doc.ID, err)
	case i.TenantKey(previous) != i.TenantKey(doc.TenantID):
		if err := i.client.SRem(ctx, i.TenantKey(previous), doc.ID.String()).Err(); err != nil {
			return fmt.Errorf("remove previous tenant membership %s: %w", doc.ID, err)
		}
	}

	if err := i.client.HSet(ctx, key, values).Err(); err != nil {
		return fmt.Errorf("index document %s: %w", doc.ID, err)
	}
	if err := i.client.SAdd(ctx, i.TenantKey(doc.TenantID), doc.ID.String()).Err(); err != nil {
		return fmt.Errorf("index tenant membership %s: %w", doc.ID, err)
	}

	i.logger.Debug("document indexed", "key", key)
	return nil
}

// RemoveFromIndex deletes the document hash and its tenant membership.
// Removing a document that is not indexed succeeds.
func (i *Index) RemoveFromIndex(ctx context.Context, id uuid.UUID) error {
	key := i.DocumentKey(id)

	tenantID, err := i.client.HGet(ctx, key, "tenant_id").Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read indexed document %s: %w", id, err)
	}

	if err := i.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("remove document %s from index: %w", id, err)
	}
	if err := i.client.SRem(ctx, i.TenantKey(tenantID), id.String()).Err(); err != nil {
		return fmt.Errorf("remove tenant membership %s: %w", id, err)
	}

	i.logger.Debug("document removed from index", "key", key)
	return nil
}

// Fields flattens doc into hash fields. The full projection is kept as JSON
// under "document" beside the filterable scalar fields.
func Fields(doc capabilities.IndexedDocument) (map[string]any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode indexed document: %w", err)
	}

	folder := ""
	if doc.FolderID != nil {
		folder = doc.FolderID.String()
	}

	return map[string]any{
		"document":       string(data),
		"name":           doc.Name,
		"status":         doc.Status,
		"document_type":  doc.DocumentType,
		"security_level": doc.SecurityLevel,
		"folder_id":      folder,
		"tenant_id":      doc.TenantID,
		"version":        doc.Version,
		"updated_at":     doc.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}
