package domain

import (
	"errors"
	"fmt"
)

// ErrNotImplemented marks operations a backend stub does not support yet.
var ErrNotImplemented = errors.New("not implemented")

// ValidationError reports input that is malformed before any backend call is
// attempted: empty names, ambiguous upload sources, unknown enum values.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an id the remote platform does not know.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// AuthenticationError reports a bad or expired token. Profile lookups that
// fail surface this instead of a silent nil.
type AuthenticationError struct {
	Backend string
	Reason  string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s: authentication failed: %s", e.Backend, e.Reason)
}

// BackendError wraps any failure coming out of a vendor API call, keeping the
// backend name and the operation that failed.
type BackendError struct {
	Backend string
	Op      string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
