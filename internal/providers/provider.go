// Package providers keeps the registry of signature providers a tenant can
// route signing requests through. At most one provider per tenant is the
// default.
package providers

import (
	"time"

	"github.com/google/uuid"
)

// Provider names an external signing service by its code.
type Provider struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Code        string    `json:"provider_code"`
	Active      bool      `json:"is_active"`
	Default     bool      `json:"is_default"`
	TenantID    string    `json:"tenant_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedBy   string    `json:"updated_by,omitempty"`
	RowVersion  int64     `json:"row_version"`
}
