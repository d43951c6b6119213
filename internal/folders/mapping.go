package folders

import (
	"github.com/JaimeStill/signet/pkg/repository"
)

const columns = `id, name, description, parent_folder_id, path, security_level, is_system_folder,
	tenant_id, created_at, created_by, updated_at, updated_by, row_version`

func scanFolder(s repository.Scanner) (Folder, error) {
	var f Folder
	err := s.Scan(
		&f.ID,
		&f.Name,
		&f.Description,
		&f.ParentID,
		&f.Path,
		&f.SecurityLevel,
		&f.System,
		&f.TenantID,
		&f.CreatedAt,
		&f.CreatedBy,
		&f.UpdatedAt,
		&f.UpdatedBy,
		&f.RowVersion,
	)
	return f, err
}
