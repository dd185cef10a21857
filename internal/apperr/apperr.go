// Package apperr defines the business error kinds surfaced by the application
// services. All of them are terminal: callers map a kind to a response and never
// retry.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business error.
type Kind int

const (
	// KindInternal is an unexpected failure (infrastructure, bugs).
	KindInternal Kind = iota
	// KindNotFound marks a missing entity, or one deliberately hidden from the caller.
	KindNotFound
	// KindUnavailable marks an item that cannot be booked: unavailable flag,
	// interval conflict, or a booking whose status is already finalized.
	KindUnavailable
	// KindAccessDenied marks an operation reserved for another user.
	KindAccessDenied
	// KindIncorrect marks a request that cannot be interpreted, such as an
	// unsupported listing state.
	KindIncorrect
	// KindConflict marks a uniqueness or concurrent-modification violation.
	KindConflict
	// KindValidation marks invalid field values on an entity.
	KindValidation
)

// Error is a classified business error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFoundf builds a KindNotFound error.
func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError builds a KindNotFound error for a missing entity.
func NewNotFoundError(entity, id string) *Error {
	return NotFoundf("%s %s not found", entity, id)
}

// Unavailablef builds a KindUnavailable error.
func Unavailablef(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnavailable, Message: fmt.Sprintf(format, args...)}
}

// AccessDeniedf builds a KindAccessDenied error.
func AccessDeniedf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAccessDenied, Message: fmt.Sprintf(format, args...)}
}

// Incorrectf builds a KindIncorrect error.
func Incorrectf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindIncorrect, Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a KindConflict error.
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Validationf builds a KindValidation error.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a KindNotFound error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsUnavailable reports whether err is a KindUnavailable error.
func IsUnavailable(err error) bool { return KindOf(err) == KindUnavailable }

// IsAccessDenied reports whether err is a KindAccessDenied error.
func IsAccessDenied(err error) bool { return KindOf(err) == KindAccessDenied }

// IsIncorrect reports whether err is a KindIncorrect error.
func IsIncorrect(err error) bool { return KindOf(err) == KindIncorrect }

// IsConflict reports whether err is a KindConflict error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsValidation reports whether err is a KindValidation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
