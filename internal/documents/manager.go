package documents

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/internal/capabilities"
	"github.com/JaimeStill/signet/internal/tenants"
)

const defaultVersionComment = "Version created"

type manager struct {
	store    Store
	registry *capabilities.Registry
	tenants  tenants.Provider
	logger   *slog.Logger
	now      func() time.Time
}

// New creates the document System over store, consulting registry for the
// content, version, and search capabilities.
func New(
	store Store,
	registry *capabilities.Registry,
	tenants tenants.Provider,
	logger *slog.Logger,
) System {
	return &manager{
		store:    store,
		registry: registry,
		tenants:  tenants,
		logger:   logger.With("system", "documents"),
		now:      time.Now,
	}
}

func (m *manager) Handler(maxUploadSize int64) *Handler {
	return NewHandler(m, m.logger, maxUploadSize)
}

func (m *manager) Find(ctx context.Context, id uuid.UUID) (*Document, error) {
	d, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (m *manager) ListByFolder(ctx context.Context, folderID *uuid.UUID) ([]Document, error) {
	return m.store.ListByFolder(ctx, folderID)
}

func (m *manager) Create(ctx context.Context, doc Document) (*Document, error) {
	if doc.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: id is assigned by the server", ErrInvalidArgument)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidArgument)
	}

	if doc.Status == "" {
		doc.Status = StatusDraft
	}
	if !doc.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, doc.Status)
	}

	defaults := m.tenants.Defaults(doc.TenantID).Document
	if doc.SecurityLevel == "" {
		doc.SecurityLevel = defaults.SecurityLevel
	}
	if doc.DocumentType == "" {
		doc.DocumentType = defaults.DocumentType
	}
	if doc.RetentionDate == nil && defaults.RetentionDays > 0 {
		retention := m.now().UTC().AddDate(0, 0, defaults.RetentionDays)
		doc.RetentionDate = &retention
	}

	doc.ID = uuid.New()
	doc.FileName = ""
	doc.FileExtension = ""
	doc.MimeType = ""
	doc.FileSize = 0
	doc.PageCount = nil
	doc.StoragePath = ""
	doc.Checksum = ""
	doc.Version = 0
	doc.UpdatedBy = doc.CreatedBy

	created, err := m.store.Insert(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	m.logger.Info("document created", "id", created.ID, "name", created.Name)
	return &created, nil
}

func (m *manager) Update(ctx context.Context, doc Document) (*Document, error) {
	if doc.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: id required for update", ErrInvalidArgument)
	}

	existing, err := m.store.Find(ctx, doc.ID)
	if err != nil {
		return nil, err
	}

	if doc.Status == "" {
		doc.Status = existing.Status
	}
	if !doc.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, doc.Status)
	}
	if strings.TrimSpace(doc.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidArgument)
	}

	next := existing
	next.Name = doc.Name
	next.Description = doc.Description
	next.Status = doc.Status
	next.DocumentType = doc.DocumentType
	next.SecurityLevel = doc.SecurityLevel
	next.FolderID = doc.FolderID
	next.TenantID = doc.TenantID
	next.RetentionDate = doc.RetentionDate
	next.UpdatedBy = doc.UpdatedBy
	if doc.RowVersion != 0 {
		next.RowVersion = doc.RowVersion
	}

	updated, err := m.store.Update(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("update document %s: %w", doc.ID, err)
	}

	m.index(ctx, &updated)

	m.logger.Info("document updated", "id", updated.ID, "row_version", updated.RowVersion)
	return &updated, nil
}

func (m *manager) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := m.store.Find(ctx, id); err != nil {
		return err
	}

	content, hasContent := m.registry.Content()
	capabilities.BestEffort(
		ctx, m.logger, capabilities.KindContent, "delete content", hasContent,
		func(ctx context.Context) error {
			return content.DeleteContent(ctx, id)
		},
		"id", id,
	)

	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}

	search, hasSearch := m.registry.Search()
	capabilities.BestEffort(
		ctx, m.logger, capabilities.KindSearch, "remove from index", hasSearch,
		func(ctx context.Context) error {
			return search.RemoveFromIndex(ctx, id)
		},
		"id", id,
	)

	m.logger.Info("document deleted", "id", id)
	return nil
}

func (m *manager) UploadContent(ctx context.Context, id uuid.UUID, file File) (*Document, error) {
	doc, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	port, ok := m.registry.Content()
	if !ok {
		return nil, capabilities.Unavailable(capabilities.KindContent)
	}

	c := describe(m.logger, file)

	locator, err := port.StoreContent(ctx, id, file.Data, c.mimeType)
	if err != nil {
		return nil, fmt.Errorf("store content for document %s: %w", id, err)
	}

	c.apply(&doc)
	doc.StoragePath = locator

	updated, err := m.store.Update(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("save document %s after upload: %w", id, err)
	}

	m.index(ctx, &updated)

	m.logger.Info(
		"document content uploaded",
		"id", id,
		"file_name", updated.FileName,
		"size", updated.FileSize,
	)
	return &updated, nil
}

func (m *manager) DownloadContent(ctx context.Context, id uuid.UUID) (io.ReadCloser, *Document, error) {
	doc, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	port, ok := m.registry.Content()
	if !ok {
		return nil, nil, capabilities.Unavailable(capabilities.KindContent)
	}

	stream, err := port.GetContentStream(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return stream, &doc, nil
}

func (m *manager) GetContentMetadata(ctx context.Context, id uuid.UUID) (*ContentMetadata, error) {
	doc, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	meta := doc.Metadata()
	return &meta, nil
}

func (m *manager) CreateVersion(ctx context.Context, id uuid.UUID, file File, comment string) (*Document, error) {
	doc, err := m.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment == "" {
		comment = defaultVersionComment
	}

	next := doc.Version + 1
	c := describe(m.logger, file)

	snapshot := Version{
		ID:            uuid.New(),
		DocumentID:    id,
		VersionNumber: next,
		Label:         versionLabel(next),
		FileName:      c.fileName,
		MimeType:      c.mimeType,
		FileSize:      c.size,
		Checksum:      c.checksum,
		ChangeSummary: comment,
		Current:       true,
		CreatedBy:     doc.UpdatedBy,
	}

	if port, ok := m.registry.Version(); ok {
		desc, err := port.CreateVersion(ctx, capabilities.VersionDescriptor{
			ID:            snapshot.ID,
			DocumentID:    id,
			VersionNumber: next,
			Label:         snapshot.Label,
			Comment:       comment,
			Type:          capabilities.VersionManual,
			Current:       true,
			FileName:      c.fileName,
			MimeType:      c.mimeType,
			FileSize:      c.size,
			Checksum:      c.checksum,
			CreatedAt:     m.now().UTC(),
			CreatedBy:     snapshot.CreatedBy,
		}, file.Data)
		if err != nil {
			return nil, fmt.Errorf("create version %d for document %s: %w", next, id, err)
		}

		snapshot.StoragePath = desc.StoragePath
		doc.StoragePath = desc.StoragePath
	} else if port, ok := m.registry.Content(); ok {
		locator, err := port.StoreContent(ctx, id, file.Data, c.mimeType)
		if err != nil {
			return nil, fmt.Errorf("store content for version %d of document %s: %w", next, id, err)
		}
		doc.StoragePath = locator
		m.logger.Debug("version capability absent, content replaced without a snapshot blob", "id", id, "version", next)
	} else {
		m.logger.Debug("version capability absent, recording local snapshot only", "id", id, "version", next)
	}

	c.apply(&doc)
	doc.Version = next

	updated, _, err := m.store.Revise(ctx, doc, snapshot)
	if err != nil {
		return nil, fmt.Errorf("save version %d for document %s: %w", next, id, err)
	}

	m.index(ctx, &updated)

	m.logger.Info("document version created", "id", id, "version", next)
	return &updated, nil
}

func (m *manager) ListVersions(ctx context.Context, documentID uuid.UUID) ([]Version, error) {
	if _, err := m.store.Find(ctx, documentID); err != nil {
		return nil, err
	}
	return m.store.ListVersions(ctx, documentID)
}

func (m *manager) FindVersion(ctx context.Context, versionID uuid.UUID) (*Version, error) {
	v, err := m.store.FindVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (m *manager) DeleteVersion(ctx context.Context, versionID uuid.UUID) error {
	if _, err := m.store.FindVersion(ctx, versionID); err != nil {
		return err
	}

	port, ok := m.registry.Version()
	capabilities.BestEffort(
		ctx, m.logger, capabilities.KindVersion, "delete version", ok,
		func(ctx context.Context) error {
			return port.DeleteVersion(ctx, versionID)
		},
		"version_id", versionID,
	)

	if err := m.store.DeleteVersion(ctx, versionID); err != nil {
		return fmt.Errorf("delete version %s: %w", versionID, err)
	}

	m.logger.Info("document version deleted", "version_id", versionID)
	return nil
}

func (m *manager) index(ctx context.Context, doc *Document) {
	port, ok := m.registry.Search()
	capabilities.BestEffort(
		ctx, m.logger, capabilities.KindSearch, "index", ok,
		func(ctx context.Context) error {
			return port.IndexDocument(ctx, doc.Indexed())
		},
		"id", doc.ID,
	)
}
