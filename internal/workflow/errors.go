package workflow

import "errors"

// Sentinel errors for workflow operations. Fallback failures are never
// surfaced to callers: the local precautionary result always stands in.
var (
	ErrEmptyIngredients = errors.New("ingredient list is empty")
	ErrResolveFailed    = errors.New("ingredient resolution failed")
	ErrFinalizeFailed   = errors.New("analysis finalization failed")
)
