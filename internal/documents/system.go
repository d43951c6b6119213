package documents

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	ListByFolder(ctx context.Context, folderID *uuid.UUID) ([]Document, error)
	Create(ctx context.Context, doc Document) (*Document, error)
	Update(ctx context.Context, doc Document) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// UploadContent requires the content capability.
	UploadContent(ctx context.Context, id uuid.UUID, file File) (*Document, error)
	// DownloadContent requires the content capability. The caller must close the reader.
	DownloadContent(ctx context.Context, id uuid.UUID) (io.ReadCloser, *Document, error)
	GetContentMetadata(ctx context.Context, id uuid.UUID) (*ContentMetadata, error)

	CreateVersion(ctx context.Context, id uuid.UUID, file File, comment string) (*Document, error)
	ListVersions(ctx context.Context, documentID uuid.UUID) ([]Version, error)
	FindVersion(ctx context.Context, versionID uuid.UUID) (*Version, error)
	DeleteVersion(ctx context.Context, versionID uuid.UUID) error
}
