package signatures

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/signet/internal/capabilities"
)

// Domain errors for signature operations.
var (
	ErrNotFound        = errors.New("signature not found")
	ErrRequestNotFound = errors.New("signature request not found")
	ErrConflict        = errors.New("signature was modified concurrently")
	ErrInvalidArgument = errors.New("invalid signature argument")
	ErrIllegalState    = errors.New("operation not allowed in current signature status")
)

// MapHTTPStatus maps signature domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict), errors.Is(err, ErrIllegalState):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, capabilities.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
