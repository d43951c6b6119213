package providers

import (
	"errors"
	"net/http"
)

// Domain errors for provider operations.
var (
	ErrNotFound        = errors.New("signature provider not found")
	ErrConflict        = errors.New("signature provider conflicts with an existing provider or was modified concurrently")
	ErrInvalidArgument = errors.New("invalid signature provider argument")
	ErrInactive        = errors.New("signature provider is inactive")
)

// MapHTTPStatus maps provider domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInactive):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
