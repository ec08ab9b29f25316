package archives

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/promptvault/pkg/storage"
)

// Domain errors for archive operations.
var (
	ErrDisabled = errors.New("archive storage is not configured")
	ErrNotFound = errors.New("archive not found")
)

// MapHTTPStatus maps archive and storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrDisabled):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return storage.MapHTTPStatus(err)
	}
}
