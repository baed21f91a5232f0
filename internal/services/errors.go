package services

import "errors"

// Sentinel errors translated by the handlers into HTTP status codes.
var (
	ErrEmailRequired     = errors.New("email required")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAmountTooSmall    = errors.New("amount below minimum charge")
)
