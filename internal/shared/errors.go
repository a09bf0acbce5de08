package shared

import "errors"

var (
	// ErrNotFound indicates a resource lookup miss.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or missing request data.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate indicates a uniqueness violation in the store.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrUnauthorized indicates no identity could be established.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates an established identity lacks permission or ownership.
	ErrForbidden = errors.New("forbidden")
)
