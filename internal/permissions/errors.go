package permissions

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/signet/internal/capabilities"
)

// Domain errors for permission operations.
var (
	ErrNotFound        = errors.New("permission not found")
	ErrConflict        = errors.New("permission was modified concurrently")
	ErrInvalidArgument = errors.New("invalid permission argument")
)

// MapHTTPStatus maps permission domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, capabilities.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
