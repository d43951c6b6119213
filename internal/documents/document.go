// Package documents implements the document domain for signet.
// It provides types, persistence, and lifecycle operations for document
// metadata, content upload and download, and version snapshots, delegating
// content, versioning, and indexing to optional capability ports.
package documents

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/internal/capabilities"
)

// Status is the lifecycle status of a document.
type Status string

const (
	StatusDraft             Status = "DRAFT"
	StatusUnderReview       Status = "UNDER_REVIEW"
	StatusApproved          Status = "APPROVED"
	StatusRejected          Status = "REJECTED"
	StatusPublished         Status = "PUBLISHED"
	StatusArchived          Status = "ARCHIVED"
	StatusMarkedForDeletion Status = "MARKED_FOR_DELETION"
	StatusDeleted           Status = "DELETED"
	StatusLocked            Status = "LOCKED"
	StatusExpired           Status = "EXPIRED"
)

var statuses = []Status{
	StatusDraft,
	StatusUnderReview,
	StatusApproved,
	StatusRejected,
	StatusPublished,
	StatusArchived,
	StatusMarkedForDeletion,
	StatusDeleted,
	StatusLocked,
	StatusExpired,
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return slices.Contains(statuses, s)
}

// DefaultMimeType is recorded when uploaded content carries no MIME type.
const DefaultMimeType = "application/octet-stream"

// Document is a managed document and the metadata of its current content.
// Content fields (file name through checksum, and Version) change only through
// UploadContent and CreateVersion. StoragePath is set only from a successful
// content or version capability write.
type Document struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	FileName      string     `json:"file_name,omitempty"`
	FileExtension string     `json:"file_extension,omitempty"`
	MimeType      string     `json:"mime_type,omitempty"`
	FileSize      int64      `json:"file_size"`
	PageCount     *int       `json:"page_count,omitempty"`
	Status        Status     `json:"status"`
	DocumentType  string     `json:"document_type"`
	SecurityLevel string     `json:"security_level"`
	StoragePath   string     `json:"storage_path,omitempty"`
	Checksum      string     `json:"checksum,omitempty"`
	Version       int        `json:"version"`
	FolderID      *uuid.UUID `json:"folder_id,omitempty"`
	TenantID      string     `json:"tenant_id,omitempty"`
	RetentionDate *time.Time `json:"retention_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CreatedBy     string     `json:"created_by,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
	UpdatedBy     string     `json:"updated_by,omitempty"`
	RowVersion    int64      `json:"row_version"`
}

// Version is a persisted snapshot of a document's content at one version number.
type Version struct {
	ID            uuid.UUID `json:"id"`
	DocumentID    uuid.UUID `json:"document_id"`
	VersionNumber int       `json:"version_number"`
	Label         string    `json:"label"`
	FileName      string    `json:"file_name,omitempty"`
	MimeType      string    `json:"mime_type,omitempty"`
	FileSize      int64     `json:"file_size"`
	StoragePath   string    `json:"storage_path,omitempty"`
	Checksum      string    `json:"checksum,omitempty"`
	ChangeSummary string    `json:"change_summary,omitempty"`
	Major         bool      `json:"major"`
	Current       bool      `json:"current"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     string    `json:"created_by,omitempty"`
}

// File is uploaded content together with its client-supplied name and type.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// ContentMetadata is the content-facing projection of a document.
type ContentMetadata struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name,omitempty"`
	MimeType    string    `json:"mime_type,omitempty"`
	FileSize    int64     `json:"file_size"`
	PageCount   *int      `json:"page_count,omitempty"`
	Checksum    string    `json:"checksum,omitempty"`
	StoragePath string    `json:"storage_path,omitempty"`
	Version     int       `json:"version"`
	HasContent  bool      `json:"has_content"`
}

// Metadata returns the content projection of d.
func (d *Document) Metadata() ContentMetadata {
	return ContentMetadata{
		ID:          d.ID,
		FileName:    d.FileName,
		MimeType:    d.MimeType,
		FileSize:    d.FileSize,
		PageCount:   d.PageCount,
		Checksum:    d.Checksum,
		StoragePath: d.StoragePath,
		Version:     d.Version,
		HasContent:  d.StoragePath != "",
	}
}

// Indexed returns the search projection of d.
func (d *Document) Indexed() capabilities.IndexedDocument {
	return capabilities.IndexedDocument{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		FileName:      d.FileName,
		MimeType:      d.MimeType,
		DocumentType:  d.DocumentType,
		SecurityLevel: d.SecurityLevel,
		Status:        string(d.Status),
		Version:       d.Version,
		FolderID:      d.FolderID,
		TenantID:      d.TenantID,
		UpdatedAt:     d.UpdatedAt,
	}
}

func versionLabel(n int) string {
	return fmt.Sprintf("v%d", n)
}
