package providers_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/signet/internal/providers"
)

var providerCols = []string{
	"id", "name", "description", "provider_code", "is_active", "is_default",
	"tenant_id", "created_at", "created_by", "updated_at", "updated_by", "row_version",
}

func newMockStore(t *testing.T) (providers.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return providers.NewStore(db), mock
}

func TestStoreFindDefault(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM signature_providers WHERE tenant_id = (.+) AND is_default").
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows(providerCols).
			AddRow(uuid.New().String(), "DocuSign", "", "docusign", true, true, "acme", now, "alice", now, "alice", int64(1)))

	p, err := store.FindDefault(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "docusign", p.Code)
	assert.True(t, p.Default)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFindDefaultNone(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM signature_providers").
		WillReturnError(sql.ErrNoRows)

	_, err := store.FindDefault(context.Background(), "acme")
	assert.ErrorIs(t, err, providers.ErrNotFound)
}

func TestStoreInsertDuplicateName(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO signature_providers").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := store.Insert(context.Background(), providers.Provider{ID: uuid.New(), Name: "DocuSign", Code: "docusign"})
	assert.ErrorIs(t, err, providers.ErrConflict)
}

func TestStoreMarkDefaultSwapsInOneTransaction(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE signature_providers SET is_default = false").
		WithArgs("acme", "bob", id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("UPDATE signature_providers SET is_default = true").
		WithArgs(id, "bob").
		WillReturnRows(sqlmock.NewRows(providerCols).
			AddRow(id.String(), "Adobe Sign", "", "adobe", true, true, "acme", now, "alice", now, "bob", int64(4)))
	mock.ExpectCommit()

	p, err := store.MarkDefault(context.Background(), id, "acme", "bob")
	require.NoError(t, err)
	assert.True(t, p.Default)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreMarkDefaultRollsBack(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE signature_providers SET is_default = false").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("UPDATE signature_providers SET is_default = true").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := store.MarkDefault(context.Background(), id, "acme", "bob")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
