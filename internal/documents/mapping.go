package documents

import (
	"github.com/JaimeStill/signet/pkg/repository"
)

const documentColumns = `id, name, description, file_name, file_extension, mime_type, file_size,
	page_count, status, document_type, security_level, storage_path, checksum, version,
	folder_id, tenant_id, retention_date, created_at, created_by, updated_at, updated_by, row_version`

const versionColumns = `id, document_id, version_number, label, file_name, mime_type, file_size,
	storage_path, checksum, change_summary, is_major, is_current, created_at, created_by`

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Description,
		&d.FileName,
		&d.FileExtension,
		&d.MimeType,
		&d.FileSize,
		&d.PageCount,
		&d.Status,
		&d.DocumentType,
		&d.SecurityLevel,
		&d.StoragePath,
		&d.Checksum,
		&d.Version,
		&d.FolderID,
		&d.TenantID,
		&d.RetentionDate,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.UpdatedAt,
		&d.UpdatedBy,
		&d.RowVersion,
	)
	return d, err
}

func scanVersion(s repository.Scanner) (Version, error) {
	var v Version
	err := s.Scan(
		&v.ID,
		&v.DocumentID,
		&v.VersionNumber,
		&v.Label,
		&v.FileName,
		&v.MimeType,
		&v.FileSize,
		&v.StoragePath,
		&v.Checksum,
		&v.ChangeSummary,
		&v.Major,
		&v.Current,
		&v.CreatedAt,
		&v.CreatedBy,
	)
	return v, err
}
