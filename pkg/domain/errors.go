// Package domain holds the error vocabulary shared by services, repositories,
// and HTTP handlers. Handlers match these with errors.Is and map them to
// status codes; nothing discriminates errors by string content.
package domain

import "errors"

var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when a uniqueness constraint is violated.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails.
	ErrValidation = errors.New("validation error")
	// ErrForbidden is returned when a valid principal targets a resource it
	// does not own.
	ErrForbidden = errors.New("forbidden")
	// ErrStorage is returned when the storage backend fails.
	ErrStorage = errors.New("storage error")
)
