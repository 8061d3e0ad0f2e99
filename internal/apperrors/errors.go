package apperrors

import "errors"

// Failure kinds surfaced by the services. Handlers map them onto HTTP
// status codes with errors.Is; wrapping keeps the kind while adding the
// operation-specific message.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
)
