package folders

import (
	"errors"
	"net/http"
)

// Domain errors for folder operations.
var (
	ErrNotFound        = errors.New("folder not found")
	ErrConflict        = errors.New("folder conflicts with an existing folder or was modified concurrently")
	ErrInvalidArgument = errors.New("invalid folder argument")
	ErrNotEmpty        = errors.New("folder has subfolders")
	ErrProtected       = errors.New("system folders cannot be deleted")
)

// MapHTTPStatus maps folder domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrNotEmpty), errors.Is(err, ErrProtected):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
