package signatures_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/signet/internal/capabilities/capabilitiestest"
	"github.com/JaimeStill/signet/internal/signatures"
)

func newSignature() signatures.Signature {
	return signatures.Signature{
		DocumentID:  uuid.New(),
		SignerName:  "Ada Lovelace",
		SignerEmail: "ada@example.com",
		CreatedBy:   "alice",
	}
}

func TestInitiateRejectsEveryViolationWithoutPersisting(t *testing.T) {
	store := newMemoryStore()
	port := &capabilitiestest.Signature{}
	sys := newSystem(store, port)

	sig := newSignature()
	sig.Language = ptr("xx")
	sig.SigningOrder = ptr(150)
	sig.SignerRole = ptr("InvalidRole")
	sig.AuthenticationMethod = ptr("INVALID_METHOD")
	sig.ExpirationDate = ptr(time.Now().AddDate(0, 0, -1))
	sig.CustomMessage = ptr(strings.Repeat("m", 1001))

	_, err := sys.Initiate(context.Background(), sig)

	require.ErrorIs(t, err, signatures.ErrValidation)
	var verr *signatures.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Violations, 6)
	assert.Equal(t, 0, store.writeCount())
	assert.Empty(t, port.Requests)
}

func TestInitiateForcesPendingAndAssignsID(t *testing.T) {
	store := newMemoryStore()
	port := &capabilitiestest.Signature{SigningURL: "https://sign.example.com/s/1"}
	sys := newSystem(store, port)

	sig := newSignature()
	sig.Status = signatures.StatusSigned
	sig.ExternalSignerID = "forged"

	created, err := sys.Initiate(context.Background(), sig)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, signatures.StatusPending, created.Status)
	assert.Equal(t, "ext-"+created.ID.String(), created.ExternalSignerID)
	assert.Equal(t, "https://sign.example.com/s/1", created.SigningURL)

	require.Len(t, port.Requests, 1)
	desc := port.Requests[0]
	assert.Equal(t, created.ID, desc.ID)
	assert.Equal(t, "Please sign", desc.CustomMessage)
	assert.Equal(t, "EMAIL", desc.AuthenticationMethod)

	reqs, err := sys.ListRequests(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, signatures.StatusPending, reqs[0].Status)
	assert.Equal(t, created.ExternalSignerID, reqs[0].Reference)
	require.NotNil(t, reqs[0].ExpirationDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *reqs[0].ExpirationDate, time.Minute)
}

func TestInitiateRejectsInvalidArguments(t *testing.T) {
	sys := newSystem(newMemoryStore(), nil)

	withID := newSignature()
	withID.ID = uuid.New()

	noDocument := newSignature()
	noDocument.DocumentID = uuid.Nil

	noEmail := newSignature()
	noEmail.SignerEmail = ""

	for name, sig := range map[string]signatures.Signature{
		"supplied id":    withID,
		"missing doc":    noDocument,
		"missing signer": noEmail,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := sys.Initiate(context.Background(), sig)
			assert.ErrorIs(t, err, signatures.ErrInvalidArgument)
		})
	}
}

func TestInitiateWithoutCapability(t *testing.T) {
	store := newMemoryStore()
	sys := newSystem(store, nil)

	created, err := sys.Initiate(context.Background(), newSignature())
	require.NoError(t, err)

	assert.Equal(t, signatures.StatusPending, created.Status)
	assert.Empty(t, created.ExternalSignerID)

	reqs, err := sys.ListRequests(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestInitiateCapabilityFailureKeepsLocalSignature(t *testing.T) {
	store := newMemoryStore()
	port := &capabilitiestest.Signature{CreateErr: capabilitiestest.ErrRemote}
	sys := newSystem(store, port)

	created, err := sys.Initiate(context.Background(), newSignature())
	require.NoError(t, err)

	assert.Empty(t, created.ExternalSignerID)
	found, err := sys.Find(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, signatures.StatusPending, found.Status)
}

func TestInitiateRecordFailureKeepsLocalSignature(t *testing.T) {
	store := newMemoryStore()
	store.attachErr = signatures.ErrConflict
	port := &capabilitiestest.Signature{}
	sys := newSystem(store, port)

	created, err := sys.Initiate(context.Background(), newSignature())
	require.NoError(t, err)

	assert.Len(t, port.Requests, 1, "provider was called")
	assert.Empty(t, created.ExternalSignerID, "returned signature matches the persisted row")

	found, err := sys.Find(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, signatures.StatusPending, found.Status)
	assert.Empty(t, found.ExternalSignerID)
}

func TestCancel(t *testing.T) {
	statuses := []signatures.Status{
		signatures.StatusPending,
		signatures.StatusInProgress,
		signatures.StatusRejected,
		signatures.StatusExpired,
	}

	ports := map[string]func() *capabilitiestest.Signature{
		"absent":  func() *capabilitiestest.Signature { return nil },
		"success": func() *capabilitiestest.Signature { return &capabilitiestest.Signature{} },
		"failure": func() *capabilitiestest.Signature {
			return &capabilitiestest.Signature{DeleteErr: capabilitiestest.ErrRemote}
		},
	}

	for portName, newPort := range ports {
		for _, status := range statuses {
			t.Run(portName+"/"+string(status), func(t *testing.T) {
				store := newMemoryStore()
				port := newPort()

				var sys signatures.System
				if port == nil {
					sys = newSystem(store, nil)
				} else {
					sys = newSystem(store, port)
				}

				sig := newSignature()
				sig.Status = status
				seeded := store.putSignature(sig)

				canceled, err := sys.Cancel(context.Background(), seeded.ID)
				require.NoError(t, err)
				assert.Equal(t, signatures.StatusCanceled, canceled.Status)

				if port != nil {
					assert.Equal(t, []uuid.UUID{seeded.ID}, port.Deleted)
				}
			})
		}
	}
}

func TestCancelSignedIsIllegal(t *testing.T) {
	store := newMemoryStore()
	port := &capabilitiestest.Signature{}
	sys := newSystem(store, port)

	sig := newSignature()
	sig.Status = signatures.StatusSigned
	seeded := store.putSignature(sig)

	_, err := sys.Cancel(context.Background(), seeded.ID)
	require.ErrorIs(t, err, signatures.ErrIllegalState)

	found, err := sys.Find(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, signatures.StatusSigned, found.Status)
	assert.Empty(t, port.Deleted)
}

func TestCancelNotFound(t *testing.T) {
	sys := newSystem(newMemoryStore(), nil)

	_, err := sys.Cancel(context.Background(), uuid.New())
	assert.ErrorIs(t, err, signatures.ErrNotFound)
}

func TestIsDocumentFullySigned(t *testing.T) {
	tests := []struct {
		name     string
		statuses []signatures.Status
		want     bool
	}{
		{"no signatures", nil, false},
		{"all signed", []signatures.Status{signatures.StatusSigned, signatures.StatusSigned}, true},
		{"one pending", []signatures.Status{signatures.StatusSigned, signatures.StatusPending}, false},
		{"signed and rejected", []signatures.Status{signatures.StatusSigned, signatures.StatusRejected}, true},
		{"only rejected", []signatures.Status{signatures.StatusRejected}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			sys := newSystem(store, nil)
			documentID := uuid.New()

			for _, status := range tt.statuses {
				sig := newSignature()
				sig.DocumentID = documentID
				sig.Status = status
				store.putSignature(sig)
			}

			got, err := sys.IsDocumentFullySigned(context.Background(), documentID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdate(t *testing.T) {
	store := newMemoryStore()
	sys := newSystem(store, nil)

	sig := newSignature()
	sig.Status = signatures.StatusPending
	sig.ExternalSignerID = "ext-1"
	seeded := store.putSignature(sig)

	change := seeded
	change.SignerName = "Grace Hopper"
	change.Status = signatures.StatusSigned
	change.ExternalSignerID = ""
	change.CreatedBy = "mallory"

	updated, err := sys.Update(context.Background(), change)
	require.NoError(t, err)

	assert.Equal(t, "Grace Hopper", updated.SignerName)
	assert.Equal(t, signatures.StatusSigned, updated.Status)
	assert.NotNil(t, updated.SignedAt)
	assert.Equal(t, "ext-1", updated.ExternalSignerID)
	assert.Equal(t, "alice", updated.CreatedBy)
}

func TestUpdateRejectsIllegalTransition(t *testing.T) {
	store := newMemoryStore()
	sys := newSystem(store, nil)

	sig := newSignature()
	sig.Status = signatures.StatusSigned
	seeded := store.putSignature(sig)

	seeded.Status = signatures.StatusPending
	_, err := sys.Update(context.Background(), seeded)
	assert.ErrorIs(t, err, signatures.ErrIllegalState)
}

func TestUpdateAfterExpirationPassed(t *testing.T) {
	store := newMemoryStore()
	sys := newSystem(store, nil)

	for _, next := range []signatures.Status{signatures.StatusExpired, signatures.StatusRejected} {
		t.Run(string(next), func(t *testing.T) {
			sig := newSignature()
			sig.Status = signatures.StatusPending
			sig.ExpirationDate = ptr(time.Now().Add(-time.Hour))
			seeded := store.putSignature(sig)

			seeded.Status = next
			updated, err := sys.Update(context.Background(), seeded)
			require.NoError(t, err)
			assert.Equal(t, next, updated.Status)
		})
	}
}

func TestUpdateRejectsNewPastExpiration(t *testing.T) {
	store := newMemoryStore()
	sys := newSystem(store, nil)

	sig := newSignature()
	sig.Status = signatures.StatusPending
	sig.ExpirationDate = ptr(time.Now().AddDate(0, 0, 10))
	seeded := store.putSignature(sig)

	seeded.ExpirationDate = ptr(time.Now().Add(-time.Hour))
	_, err := sys.Update(context.Background(), seeded)
	assert.ErrorIs(t, err, signatures.ErrValidation)
}

func TestUpdateSignedIsImmutable(t *testing.T) {
	store := newMemoryStore()
	sys := newSystem(store, nil)

	sig := newSignature()
	sig.Status = signatures.StatusSigned
	seeded := store.putSignature(sig)

	change := seeded
	change.SignerEmail = "mallory@example.com"
	_, err := sys.Update(context.Background(), change)
	require.ErrorIs(t, err, signatures.ErrIllegalState)

	found, err := sys.Find(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", found.SignerEmail)
}

func TestUpdateStaleRowVersion(t *testing.T) {
	store := newMemoryStore()
	sys := newSystem(store, nil)

	seeded := store.putSignature(newSignature())
	seeded.RowVersion = 7

	_, err := sys.Update(context.Background(), seeded)
	assert.ErrorIs(t, err, signatures.ErrConflict)
}

func TestDelete(t *testing.T) {
	store := newMemoryStore()
	sys := newSystem(store, nil)

	seeded := store.putSignature(newSignature())

	require.NoError(t, sys.Delete(context.Background(), seeded.ID))
	assert.ErrorIs(t, sys.Delete(context.Background(), seeded.ID), signatures.ErrNotFound)
}
