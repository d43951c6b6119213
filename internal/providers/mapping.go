package providers

import (
	"github.com/JaimeStill/signet/pkg/repository"
)

const columns = `id, name, description, provider_code, is_active, is_default,
	tenant_id, created_at, created_by, updated_at, updated_by, row_version`

func scanProvider(s repository.Scanner) (Provider, error) {
	var p Provider
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Code,
		&p.Active,
		&p.Default,
		&p.TenantID,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.UpdatedAt,
		&p.UpdatedBy,
		&p.RowVersion,
	)
	return p, err
}
