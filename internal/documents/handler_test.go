package documents_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/signet/internal/capabilities"
	"github.com/JaimeStill/signet/internal/capabilities/capabilitiestest"
	"github.com/JaimeStill/signet/internal/documents"
	"github.com/JaimeStill/signet/pkg/routes"
)

func newMux(t *testing.T, ports capabilities.Ports, maxUpload int64) *http.ServeMux {
	t.Helper()
	sys := newSystem(newMemoryStore(), ports)
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler(maxUpload).Routes())
	return mux
}

func multipartFile(t *testing.T, name, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="file"; filename="` + name + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("comment", "first draft"))
	require.NoError(t, w.Close())

	return &body, w.FormDataContentType()
}

func createDocument(t *testing.T, mux *http.ServeMux) documents.Document {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/documents", strings.NewReader(`{"name":"contract"}`)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var doc documents.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	return doc
}

func TestHandlerCreateAndFind(t *testing.T) {
	mux := newMux(t, capabilities.Ports{}, 1<<20)
	doc := createDocument(t, mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/documents/"+doc.ID.String(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/documents/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/documents", strings.NewReader(`{"id":"`+doc.ID.String()+`","name":"x"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerUploadWithoutContentCapability(t *testing.T) {
	mux := newMux(t, capabilities.Ports{}, 1<<20)
	doc := createDocument(t, mux)

	body, contentType := multipartFile(t, "a.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest("PUT", "/documents/"+doc.ID.String()+"/content", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "capability not configured")
}

func TestHandlerUploadAndDownload(t *testing.T) {
	mux := newMux(t, capabilities.Ports{Content: capabilitiestest.NewContent()}, 1<<20)
	doc := createDocument(t, mux)

	body, contentType := multipartFile(t, "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest("PUT", "/documents/"+doc.ID.String()+"/content", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/documents/"+doc.ID.String()+"/content", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "notes.txt")
}

func TestHandlerUploadTooLarge(t *testing.T) {
	mux := newMux(t, capabilities.Ports{Content: capabilitiestest.NewContent()}, 64)
	doc := createDocument(t, mux)

	body, contentType := multipartFile(t, "big.bin", "application/octet-stream", bytes.Repeat([]byte("x"), 4096))
	req := httptest.NewRequest("PUT", "/documents/"+doc.ID.String()+"/content", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandlerVersions(t *testing.T) {
	mux := newMux(t, capabilities.Ports{}, 1<<20)
	doc := createDocument(t, mux)

	body, contentType := multipartFile(t, "v.txt", "text/plain", []byte("one"))
	req := httptest.NewRequest("POST", "/documents/"+doc.ID.String()+"/versions", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/documents/"+doc.ID.String()+"/versions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var versions []documents.Version
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &versions))
	require.Len(t, versions, 1)
	assert.Equal(t, "first draft", versions[0].ChangeSummary)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("DELETE", "/versions/"+versions[0].ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/versions/"+versions[0].ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
