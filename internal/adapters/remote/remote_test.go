package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/signet/internal/adapters/remote"
	"github.com/JaimeStill/signet/internal/capabilities"
)

func newClient(t *testing.T, h http.HandlerFunc) *remote.Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return remote.NewClient(ts.URL+"/", "secret", 5*time.Second)
}

func TestCreateSignatureRequest(t *testing.T) {
	id := uuid.New()
	var got capabilities.SignatureRequestDescriptor

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/signature-requests", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"external_id":"env-1","signing_url":"https://sign.example.com/env-1"}`))
	})

	sig := remote.NewSignature(client)
	ext, err := sig.CreateSignatureRequest(context.Background(), capabilities.SignatureRequestDescriptor{
		ID:          id,
		SignerEmail: "ada@example.com",
		Language:    "en",
	})
	require.NoError(t, err)

	assert.Equal(t, "env-1", ext.ExternalID)
	assert.Equal(t, "https://sign.example.com/env-1", ext.SigningURL)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "en", got.Language)
}

func TestCreateSignatureRequestMissingExternalID(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := remote.NewSignature(client).CreateSignatureRequest(context.Background(), capabilities.SignatureRequestDescriptor{})
	assert.Error(t, err)
}

func TestResendAndDelete(t *testing.T) {
	id := uuid.New()
	var calls []string

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	sig := remote.NewSignature(client)
	require.NoError(t, sig.ResendNotification(context.Background(), id))
	require.NoError(t, sig.DeleteSignatureRequest(context.Background(), id))

	assert.Equal(t, []string{
		"POST /signature-requests/" + id.String() + "/resend",
		"DELETE /signature-requests/" + id.String(),
	}, calls)
}

func TestStatusError(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "provider down", http.StatusBadGateway)
	})

	err := remote.NewSignature(client).ResendNotification(context.Background(), uuid.New())

	var statusErr *remote.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
	assert.Equal(t, "provider down", statusErr.Body)
}

func TestPermissionGrantAndCheck(t *testing.T) {
	grant := capabilities.PermissionDescriptor{
		ID:             uuid.New(),
		ResourceID:     uuid.New(),
		ResourceType:   capabilities.ResourceDocument,
		PrincipalID:    uuid.New(),
		PrincipalType:  capabilities.PrincipalUser,
		PermissionType: "READ",
		Granted:        true,
	}

	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/permissions":
			var d capabilities.PermissionDescriptor
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&d))
			assert.Equal(t, grant.ID, d.ID)
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPut && r.URL.Path == "/permissions/"+grant.ID.String():
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodDelete && r.URL.Path == "/permissions/"+grant.ID.String():
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/permissions/check":
			q := r.URL.Query()
			granted := q.Get("resource_id") == grant.ResourceID.String() &&
				q.Get("principal_type") == "USER" &&
				q.Get("permission_type") == "READ"
			json.NewEncoder(w).Encode(map[string]bool{"granted": granted})
		default:
			http.NotFound(w, r)
		}
	})

	perm := remote.NewPermission(client)
	ctx := context.Background()

	require.NoError(t, perm.GrantPermission(ctx, grant))
	require.NoError(t, perm.UpdatePermission(ctx, grant))

	ok, err := perm.HasPermission(ctx, grant.ResourceID, grant.ResourceType, grant.PrincipalID, grant.PrincipalType, "READ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = perm.HasPermission(ctx, grant.ResourceID, grant.ResourceType, grant.PrincipalID, grant.PrincipalType, "WRITE")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, perm.RevokePermission(ctx, grant.ID))
}
