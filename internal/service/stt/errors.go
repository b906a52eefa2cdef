package stt

import (
	"errors"
	"fmt"
)

// Code classifies a backend failure so routing decisions never depend on
// free-text error messages.
type Code string

const (
	// CodePayloadTooLong means the inline path rejected the payload size;
	// the caller should retry through the staged path.
	CodePayloadTooLong Code = "payload_too_long"

	// CodeTimeout means a staged job exceeded its deadline.
	CodeTimeout Code = "timeout"

	// CodeUnavailable means the provider could not be reached or the
	// backend is not configured for the requested path.
	CodeUnavailable Code = "unavailable"

	// CodeInternal covers everything else.
	CodeInternal Code = "internal"
)

// Error is a classified backend failure.
type Error struct {
	Code    Code
	Backend string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stt %s: %s: %v", e.Backend, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with a code and the backend name.
func NewError(code Code, backend string, err error) *Error {
	return &Error{Code: code, Backend: backend, Err: err}
}

// CodeOf extracts the classification from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}
