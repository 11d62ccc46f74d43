package applications

import (
	"errors"
	"net/http"
)

// Domain errors for application operations.
var (
	ErrNotFound          = errors.New("application not found")
	ErrDuplicate         = errors.New("application already exists")
	ErrInvalidStatus     = errors.New("unrecognized application status")
	ErrInvalidTransition = errors.New("invalid application status transition")
	ErrMissingFields     = errors.New("product name and company name required")
)

// MapHTTPStatus maps application domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidTransition) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrMissingFields) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
