package services

import "errors"

// Sentinel errors returned by services. Handlers map them to HTTP statuses
// with errors.Is.
var (
	ErrValidation           = errors.New("validation failed")
	ErrConflict             = errors.New("conflict")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrUnsupportedMediaType = errors.New("unsupported file type")
	ErrUpstream             = errors.New("upstream failure")
	ErrIndexDisabled        = errors.New("review index disabled")
)
