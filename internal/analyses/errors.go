package analyses

import (
	"errors"
	"net/http"
)

// Domain errors for analysis operations.
var (
	ErrNotFound      = errors.New("analysis not found")
	ErrDuplicate     = errors.New("analysis already exists")
	ErrNoIngredients = errors.New("no ingredients or label text provided")
	ErrNoProduct     = errors.New("product name required")
)

// MapHTTPStatus maps analysis domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNoIngredients) || errors.Is(err, ErrNoProduct) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
