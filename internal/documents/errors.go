package documents

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/signet/internal/capabilities"
	"github.com/JaimeStill/signet/pkg/storage"
)

// Domain errors for document operations.
var (
	ErrNotFound        = errors.New("document not found")
	ErrVersionNotFound = errors.New("document version not found")
	ErrConflict        = errors.New("document was modified concurrently")
	ErrInvalidArgument = errors.New("invalid document argument")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrInvalidFile     = errors.New("invalid file")
)

// MapHTTPStatus maps document domain errors to appropriate HTTP status codes.
// Blob errors surfaced by the content capability fall through to storage.MapHTTPStatus.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrVersionNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, capabilities.ErrUnavailable) {
		return http.StatusServiceUnavailable
	}
	return storage.MapHTTPStatus(err)
}
