package folders_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/signet/internal/folders"
)

type memoryStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]folders.Folder
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[uuid.UUID]folders.Folder)}
}

func (s *memoryStore) Find(_ context.Context, id uuid.UUID) (folders.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.rows[id]
	if !ok {
		return folders.Folder{}, folders.ErrNotFound
	}
	return f, nil
}

func (s *memoryStore) ListChildren(_ context.Context, tenantID string, parentID *uuid.UUID) ([]folders.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []folders.Folder
	for _, f := range s.rows {
		switch {
		case parentID == nil && f.ParentID == nil && f.TenantID == tenantID:
			out = append(out, f)
		case parentID != nil && f.ParentID != nil && *f.ParentID == *parentID:
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *memoryStore) CountChildren(_ context.Context, id uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, f := range s.rows {
		if f.ParentID != nil && *f.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) Insert(_ context.Context, f folders.Folder) (folders.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.rows {
		if other.TenantID == f.TenantID && other.Path == f.Path {
			return folders.Folder{}, folders.ErrConflict
		}
	}
	f.RowVersion = 1
	s.rows[f.ID] = f
	return f, nil
}

func (s *memoryStore) Update(_ context.Context, f folders.Folder, previousPath string) (folders.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.rows[f.ID]
	if !ok {
		return folders.Folder{}, folders.ErrNotFound
	}
	if existing.RowVersion != f.RowVersion {
		return folders.Folder{}, folders.ErrConflict
	}
	f.RowVersion++
	s.rows[f.ID] = f

	if f.Path != previousPath {
		prefix := previousPath + folders.Separator
		for id, d := range s.rows {
			if d.TenantID == f.TenantID && strings.HasPrefix(d.Path, prefix) {
				d.Path = f.Path + strings.TrimPrefix(d.Path, previousPath)
				d.RowVersion++
				s.rows[id] = d
			}
		}
	}
	return f, nil
}

func (s *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return folders.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func newSystem(store folders.Store) folders.System {
	return folders.New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func create(t *testing.T, sys folders.System, name string, parent *folders.Folder) *folders.Folder {
	t.Helper()
	f := folders.Folder{Name: name, TenantID: "acme", CreatedBy: "alice"}
	if parent != nil {
		f.ParentID = &parent.ID
	}
	created, err := sys.Create(context.Background(), f)
	require.NoError(t, err)
	return created
}

func TestCreateDerivesPath(t *testing.T) {
	sys := newSystem(newMemoryStore())

	root := create(t, sys, "contracts", nil)
	child := create(t, sys, "2026", root)

	assert.Equal(t, "/contracts", root.Path)
	assert.Equal(t, "/contracts/2026", child.Path)
	assert.Equal(t, "acme", child.TenantID)
	assert.Equal(t, "alice", child.UpdatedBy)
}

func TestCreateValidation(t *testing.T) {
	sys := newSystem(newMemoryStore())
	missing := uuid.New()

	cases := []struct {
		name   string
		folder folders.Folder
		want   error
	}{
		{"client id", folders.Folder{ID: uuid.New(), Name: "a"}, folders.ErrInvalidArgument},
		{"blank name", folders.Folder{Name: "  "}, folders.ErrInvalidArgument},
		{"separator in name", folders.Folder{Name: "a/b"}, folders.ErrInvalidArgument},
		{"missing parent", folders.Folder{Name: "a", ParentID: &missing}, folders.ErrNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sys.Create(context.Background(), tc.folder)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateDuplicateSibling(t *testing.T) {
	sys := newSystem(newMemoryStore())
	create(t, sys, "contracts", nil)

	_, err := sys.Create(context.Background(), folders.Folder{Name: "contracts", TenantID: "acme"})
	assert.ErrorIs(t, err, folders.ErrConflict)
}

func TestUpdateMoveRewritesSubtree(t *testing.T) {
	store := newMemoryStore()
	sys := newSystem(store)
	ctx := context.Background()

	contracts := create(t, sys, "contracts", nil)
	archive := create(t, sys, "archive", nil)
	year := create(t, sys, "2026", contracts)
	q1 := create(t, sys, "q1", year)

	moved, err := sys.Update(ctx, folders.Folder{
		ID:        year.ID,
		Name:      "2026",
		ParentID:  &archive.ID,
		UpdatedBy: "bob",
	})
	require.NoError(t, err)
	assert.Equal(t, "/archive/2026", moved.Path)
	assert.Equal(t, "alice", moved.CreatedBy)
	assert.Equal(t, "bob", moved.UpdatedBy)

	leaf, err := sys.Find(ctx, q1.ID)
	require.NoError(t, err)
	assert.Equal(t, "/archive/2026/q1", leaf.Path)

	kids, err := sys.ListChildren(ctx, "acme", &contracts.ID)
	require.NoError(t, err)
	assert.Empty(t, kids)
}

func TestUpdateRejectsCycle(t *testing.T) {
	sys := newSystem(newMemoryStore())
	ctx := context.Background()

	root := create(t, sys, "contracts", nil)
	child := create(t, sys, "2026", root)
	grandchild := create(t, sys, "q1", child)

	t.Run("self", func(t *testing.T) {
		_, err := sys.Update(ctx, folders.Folder{ID: root.ID, Name: "contracts", ParentID: &root.ID})
		assert.ErrorIs(t, err, folders.ErrInvalidArgument)
	})

	t.Run("descendant", func(t *testing.T) {
		_, err := sys.Update(ctx, folders.Folder{ID: root.ID, Name: "contracts", ParentID: &grandchild.ID})
		assert.ErrorIs(t, err, folders.ErrInvalidArgument)
	})
}

func TestUpdateRejectsForeignTenantParent(t *testing.T) {
	sys := newSystem(newMemoryStore())
	ctx := context.Background()

	mine := create(t, sys, "contracts", nil)
	theirs, err := sys.Create(ctx, folders.Folder{Name: "shared", TenantID: "globex"})
	require.NoError(t, err)

	_, err = sys.Update(ctx, folders.Folder{ID: mine.ID, Name: "contracts", ParentID: &theirs.ID})
	assert.ErrorIs(t, err, folders.ErrInvalidArgument)
}

func TestUpdateStaleRowVersion(t *testing.T) {
	sys := newSystem(newMemoryStore())
	f := create(t, sys, "contracts", nil)

	_, err := sys.Update(context.Background(), folders.Folder{ID: f.ID, Name: "legal", RowVersion: f.RowVersion + 5})
	assert.ErrorIs(t, err, folders.ErrConflict)
}

func TestDelete(t *testing.T) {
	store := newMemoryStore()
	sys := newSystem(store)
	ctx := context.Background()

	root := create(t, sys, "contracts", nil)
	child := create(t, sys, "2026", root)

	err := sys.Delete(ctx, root.ID)
	assert.ErrorIs(t, err, folders.ErrNotEmpty)

	require.NoError(t, sys.Delete(ctx, child.ID))
	require.NoError(t, sys.Delete(ctx, root.ID))

	_, err = sys.Find(ctx, root.ID)
	assert.ErrorIs(t, err, folders.ErrNotFound)
}

func TestDeleteSystemFolder(t *testing.T) {
	sys := newSystem(newMemoryStore())

	inbox, err := sys.Create(context.Background(), folders.Folder{Name: "inbox", TenantID: "acme", System: true})
	require.NoError(t, err)

	err = sys.Delete(context.Background(), inbox.ID)
	assert.ErrorIs(t, err, folders.ErrProtected)
}

func TestMapHTTPStatus(t *testing.T) {
	cases := map[error]int{
		folders.ErrNotFound:        404,
		folders.ErrConflict:        409,
		folders.ErrNotEmpty:        409,
		folders.ErrProtected:       409,
		folders.ErrInvalidArgument: 400,
		io.EOF:                     500,
	}
	for err, want := range cases {
		assert.Equal(t, want, folders.MapHTTPStatus(err), err.Error())
	}
}
