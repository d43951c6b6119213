package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/signet/internal/capabilities"
	"github.com/JaimeStill/signet/internal/capabilities/capabilitiestest"
	"github.com/JaimeStill/signet/pkg/routes"
)

func TestCapabilitiesList(t *testing.T) {
	registry := capabilities.NewRegistry(capabilities.Ports{
		Signature: &capabilitiestest.Signature{},
	})
	h := newCapabilitiesHandler(registry, "1.2.3", slog.New(slog.NewTextHandler(io.Discard, nil)))

	mux := http.NewServeMux()
	routes.Register(mux, h.routes())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/capabilities", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp capabilitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1.2.3", resp.Version)
	require.Len(t, resp.Capabilities, len(capabilities.Kinds))

	for _, c := range resp.Capabilities {
		assert.Equal(t, c.Kind == capabilities.KindSignature, c.Available, "kind %s", c.Kind)
	}
}
