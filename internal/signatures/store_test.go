package signatures_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/signet/internal/signatures"
)

var signatureCols = []string{
	"id", "document_id", "document_version_id", "signer_party_id", "signer_name", "signer_email",
	"signature_type", "signature_format", "status", "signature_data", "certificate",
	"page", "position_x", "position_y", "width", "height", "reason", "location", "contact_info",
	"expiration_date", "signed_at", "tenant_id",
	"custom_message", "language", "time_zone", "signer_role", "signing_order", "is_required", "authentication_method",
	"external_signer_id", "signing_url", "provider_metadata",
	"created_at", "created_by", "updated_at", "updated_by", "row_version",
}

var requestCols = []string{
	"id", "signature_id", "reference", "status", "message",
	"notification_sent", "notification_sent_at", "reminder_sent", "reminder_sent_at",
	"expiration_date", "completed_at", "tenant_id",
	"created_at", "created_by", "updated_at", "updated_by", "row_version",
}

func signatureRow(id, documentID uuid.UUID, status signatures.Status, rowVersion int64) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id.String(), documentID.String(), nil, nil, "Ada", "ada@example.com",
		"ELECTRONIC", "PADES", string(status), "", "",
		int64(1), 10.5, 20.0, nil, nil, "", "", "",
		nil, nil, "acme",
		nil, "en", nil, "Signer", int64(1), true, nil,
		"ext-1", "", "",
		now, "alice", now, "alice", rowVersion,
	}
}

func requestRow(id, signatureID uuid.UUID, status signatures.Status, reminded bool, rowVersion int64) []driver.Value {
	now := time.Now()
	var remindedAt driver.Value
	if reminded {
		remindedAt = now
	}
	return []driver.Value{
		id.String(), signatureID.String(), "ext-1", string(status), "Signature request created",
		false, nil, reminded, remindedAt,
		now.Add(time.Hour), nil, "acme",
		now, "alice", now, "alice", rowVersion,
	}
}

func newMockStore(t *testing.T) (signatures.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return signatures.NewStore(db), mock
}

func TestStoreFind(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()
	docID := uuid.New()

	mock.ExpectQuery("SELECT (.+) FROM document_signatures WHERE id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(signatureCols).AddRow(signatureRow(id, docID, signatures.StatusPending, 3)...))

	sig, err := store.Find(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, sig.ID)
	assert.Equal(t, docID, sig.DocumentID)
	assert.Equal(t, signatures.StatusPending, sig.Status)
	assert.Nil(t, sig.DocumentVersionID)
	require.NotNil(t, sig.Page)
	assert.Equal(t, 1, *sig.Page)
	require.NotNil(t, sig.Language)
	assert.Equal(t, "en", *sig.Language)
	assert.Nil(t, sig.CustomMessage)
	require.NotNil(t, sig.Required)
	assert.True(t, *sig.Required)
	assert.Equal(t, int64(3), sig.RowVersion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFindNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM document_signatures").WillReturnError(sql.ErrNoRows)

	_, err := store.Find(context.Background(), uuid.New())
	assert.ErrorIs(t, err, signatures.ErrNotFound)
}

func TestStoreCountByStatus(t *testing.T) {
	store, mock := newMockStore(t)
	docID := uuid.New()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(docID, signatures.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	n, err := store.CountByStatus(context.Background(), docID, signatures.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStoreInsertDocumentMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO document_signatures").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := store.Insert(context.Background(), signatures.Signature{ID: uuid.New(), DocumentID: uuid.New()})
	assert.ErrorIs(t, err, signatures.ErrNotFound)
}

func TestStoreUpdateStale(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("UPDATE document_signatures SET").
		WillReturnRows(sqlmock.NewRows(signatureCols))

	_, err := store.Update(context.Background(), signatures.Signature{ID: uuid.New(), RowVersion: 1})
	assert.ErrorIs(t, err, signatures.ErrConflict)
}

func TestStoreAttachRequest(t *testing.T) {
	store, mock := newMockStore(t)
	sigID := uuid.New()
	docID := uuid.New()
	reqID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE document_signatures SET").
		WillReturnRows(sqlmock.NewRows(signatureCols).AddRow(signatureRow(sigID, docID, signatures.StatusPending, 2)...))
	mock.ExpectQuery("INSERT INTO signature_requests").
		WillReturnRows(sqlmock.NewRows(requestCols).AddRow(requestRow(reqID, sigID, signatures.StatusPending, false, 1)...))
	mock.ExpectCommit()

	sig, req, err := store.AttachRequest(
		context.Background(),
		signatures.Signature{ID: sigID, RowVersion: 1},
		signatures.Request{ID: reqID, SignatureID: sigID},
	)
	require.NoError(t, err)
	assert.Equal(t, "ext-1", sig.ExternalSignerID)
	assert.Equal(t, reqID, req.ID)
	assert.Equal(t, "ext-1", req.Reference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreAttachRequestRollsBack(t *testing.T) {
	store, mock := newMockStore(t)
	sigID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE document_signatures SET").
		WillReturnRows(sqlmock.NewRows(signatureCols).AddRow(signatureRow(sigID, uuid.New(), signatures.StatusPending, 2)...))
	mock.ExpectQuery("INSERT INTO signature_requests").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, _, err := store.AttachRequest(
		context.Background(),
		signatures.Signature{ID: sigID, RowVersion: 1},
		signatures.Request{ID: uuid.New(), SignatureID: sigID},
	)
	assert.ErrorIs(t, err, signatures.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreApplyStatusRequestOnly(t *testing.T) {
	store, mock := newMockStore(t)
	reqID := uuid.New()
	sigID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE signature_requests SET").
		WillReturnRows(sqlmock.NewRows(requestCols).AddRow(requestRow(reqID, sigID, signatures.StatusInProgress, false, 2)...))
	mock.ExpectCommit()

	req, err := store.ApplyStatus(context.Background(), nil, signatures.Request{ID: reqID, RowVersion: 1})
	require.NoError(t, err)
	assert.Equal(t, signatures.StatusInProgress, req.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListExpired(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM signature_requests WHERE status = (.+) AND expiration_date <").
		WithArgs(signatures.StatusPending, now).
		WillReturnRows(sqlmock.NewRows(requestCols).
			AddRow(requestRow(uuid.New(), uuid.New(), signatures.StatusPending, false, 1)...))

	reqs, err := store.ListExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)
}

func TestStoreMarkReminded(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()
	at := time.Now()

	mock.ExpectQuery("UPDATE signature_requests SET reminder_sent = true").
		WithArgs(id, at).
		WillReturnRows(sqlmock.NewRows(requestCols).AddRow(requestRow(id, uuid.New(), signatures.StatusPending, true, 2)...))

	req, err := store.MarkReminded(context.Background(), id, at)
	require.NoError(t, err)
	assert.True(t, req.ReminderSent)
	assert.NotNil(t, req.ReminderSentAt)
}

func TestStoreMarkNotifiedNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("UPDATE signature_requests SET notification_sent = true").
		WillReturnError(sql.ErrNoRows)

	_, err := store.MarkNotified(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, signatures.ErrRequestNotFound)
}
