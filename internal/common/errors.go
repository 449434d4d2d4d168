// Package common defines sentinel errors shared by the storage, model and
// service layers of simkeeper. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorCorrupt  = errors.New("corrupt value")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors (length constraints, malformed input).
	ErrorValidation = errors.New("validation error")
)
