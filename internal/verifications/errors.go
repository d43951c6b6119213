package verifications

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("verification not found")
	ErrSignatureNotFound = errors.New("signature not found")
	ErrDuplicate         = errors.New("verification already recorded")
)

// MapHTTPStatus maps verification domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSignatureNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
