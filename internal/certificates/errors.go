package certificates

import (
	"errors"
	"net/http"

	"github.com/halalcheck/halalcheck/internal/applications"
)

// Domain errors for certificate operations.
var (
	ErrNotFound       = errors.New("certificate not found")
	ErrDuplicate      = errors.New("certificate already exists")
	ErrNotApproved    = errors.New("application is not in approved status")
	ErrAlreadyRevoked = errors.New("certificate already revoked")
	ErrMissingReason  = errors.New("revocation reason required")
)

// MapHTTPStatus maps certificate domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, applications.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrNotApproved) || errors.Is(err, ErrAlreadyRevoked) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrMissingReason) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
