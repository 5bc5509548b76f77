// Package apperr defines the business error kinds the HTTP layer maps to
// status codes. Services wrap these with fmt.Errorf("%w: ...") for detail;
// anything not matching one of them is treated as an internal failure.
package apperr

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation failed")
)
