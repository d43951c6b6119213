// Package folders organizes documents into a per-tenant hierarchy. Each folder
// stores its materialized path, which is rewritten for the whole subtree when
// a folder is renamed or moved.
package folders

import (
	"time"

	"github.com/google/uuid"
)

// Separator joins folder names into a path.
const Separator = "/"

// maxDepth bounds ancestor walks.
const maxDepth = 256

// Folder is a node in a tenant's folder tree. Path is derived from the parent
// path and Name and is never taken from the caller.
type Folder struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	ParentID      *uuid.UUID `json:"parent_folder_id,omitempty"`
	Path          string     `json:"path"`
	SecurityLevel string     `json:"security_level,omitempty"`
	System        bool       `json:"is_system_folder"`
	TenantID      string     `json:"tenant_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CreatedBy     string     `json:"created_by,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
	UpdatedBy     string     `json:"updated_by,omitempty"`
	RowVersion    int64      `json:"row_version"`
}

// childPath returns the path of a folder named name under parent. A nil
// parent places the folder at the root.
func childPath(parent *Folder, name string) string {
	if parent == nil {
		return Separator + name
	}
	return parent.Path + Separator + name
}
