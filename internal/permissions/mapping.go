package permissions

import (
	"github.com/JaimeStill/signet/pkg/repository"
)

const columns = `id, document_id, principal_id, permission_type, is_granted, expires_at,
	tenant_id, created_at, created_by, updated_at, updated_by, row_version`

func scanPermission(s repository.Scanner) (Permission, error) {
	var p Permission
	err := s.Scan(
		&p.ID,
		&p.DocumentID,
		&p.PrincipalID,
		&p.Type,
		&p.Granted,
		&p.ExpiresAt,
		&p.TenantID,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.UpdatedAt,
		&p.UpdatedBy,
		&p.RowVersion,
	)
	return p, err
}
