package contract

import "errors"

// Errors returned by repositories. Adapters translate driver-specific errors
// into these so use cases can branch with errors.Is.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)
