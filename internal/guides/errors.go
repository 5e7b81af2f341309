package guides

import (
	"errors"
	"net/http"

	"github.com/brandforge/giftguide/internal/identity"
)

// Domain errors for guide operations.
var (
	ErrNotFound       = errors.New("guide not found")
	ErrDuplicate      = errors.New("guide already exists")
	ErrInvalidRequest = errors.New("invalid guide request")
)

// MapHTTPStatus maps guide domain and pipeline errors to HTTP status codes.
// Validation failures are client errors; every other terminal pipeline
// failure is a server error.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, identity.ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
