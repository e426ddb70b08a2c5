package services

import "errors"

// Domain error taxonomy. Handlers translate these to HTTP statuses; nothing
// below the handler layer knows about HTTP.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
)
