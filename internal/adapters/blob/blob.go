// Package blob provides the content and version capabilities over blob storage.
package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/internal/capabilities"
	"github.com/JaimeStill/signet/pkg/storage"
)

const contentPrefix = "content"

// Store writes document content and version snapshots to blob storage.
// It satisfies capabilities.ContentPort and capabilities.VersionPort.
type Store struct {
	storage storage.System
	logger  *slog.Logger
}

var (
	_ capabilities.ContentPort = (*Store)(nil)
	_ capabilities.VersionPort = (*Store)(nil)
)

func New(sys storage.System, logger *slog.Logger) *Store {
	return &Store{
		storage: sys,
		logger:  logger.With("adapter", "blob"),
	}
}

// ContentKey returns the blob key holding the current content of a document.
func ContentKey(id uuid.UUID) string {
	return path.Join(contentPrefix, id.String())
}

func (s *Store) versionKey(id uuid.UUID) string {
	return path.Join(s.storage.VersionPrefix(), id.String())
}

func (s *Store) StoreContent(ctx context.Context, id uuid.UUID, data []byte, mimeType string) (string, error) {
	key := ContentKey(id)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), mimeType); err != nil {
		return "", err
	}

	s.logger.Debug("content stored", "key", key, "size", len(data))
	return key, nil
}

func (s *Store) GetContentStream(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	rc, err := s.storage.Download(ctx, ContentKey(id))
	if err != nil {
		return nil, fmt.Errorf("content for document %s: %w", id, err)
	}
	return rc, nil
}

// DeleteContent removes the content blob. A missing blob is not an error.
func (s *Store) DeleteContent(ctx context.Context, id uuid.UUID) error {
	return s.remove(ctx, ContentKey(id))
}

// CreateVersion writes the version snapshot. A current version also replaces
// the document content served by GetContentStream.
func (s *Store) CreateVersion(ctx context.Context, v capabilities.VersionDescriptor, data []byte) (capabilities.VersionDescriptor, error) {
	key := s.versionKey(v.ID)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), v.MimeType); err != nil {
		return capabilities.VersionDescriptor{}, err
	}

	if v.Current {
		if err := s.storage.Upload(ctx, ContentKey(v.DocumentID), bytes.NewReader(data), v.MimeType); err != nil {
			return capabilities.VersionDescriptor{}, fmt.Errorf("promote version %d of document %s: %w", v.VersionNumber, v.DocumentID, err)
		}
	}

	v.StoragePath = key
	s.logger.Debug("version stored", "key", key, "document_id", v.DocumentID, "version", v.VersionNumber)
	return v, nil
}

// DeleteVersion removes the version blob. A missing blob is not an error.
func (s *Store) DeleteVersion(ctx context.Context, id uuid.UUID) error {
	return s.remove(ctx, s.versionKey(id))
}

func (s *Store) remove(ctx context.Context, key string) error {
	if err := s.storage.Delete(ctx, key); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("blob already absent", "key", key)
			return nil
		}
		return err
	}
	return nil
}
