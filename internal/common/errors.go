// Package common defines sentinel errors shared across service layers.
// Callers should use errors.Is to match these values; the web layer is the
// only place where they are translated into HTTP status codes.
package common

import "errors"

var (

	// repository-level errors
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// service-level errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrValidation     = errors.New("validation error")

	// auth-specific errors
	ErrInvalidToken  = errors.New("invalid token")
	ErrConfiguration = errors.New("missing signing configuration")
)
