package model

import (
	"errors"
	"fmt"
)

// Error is a domain error carrying a stable code for logs and dispatch.
type Error struct {
	code string
	msg  string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.msg }

// Code returns the stable error code. The transport router picks this up for
// its err_code log attribute.
func (e *Error) Code() string { return e.code }

// Sentinel domain errors. Services return these (optionally wrapped) and
// handlers map them to user-visible replies.
var (
	// ErrNotFound reports an operation referencing a missing entity.
	ErrNotFound = &Error{code: "NOT_FOUND", msg: "not found"}
	// ErrUnauthorized reports a non-admin attempting an admin-only transition.
	ErrUnauthorized = &Error{code: "UNAUTHORIZED", msg: "unauthorized"}
	// ErrDuplicateRegistration reports a second registration for the same
	// (lecture, student) pair. Informational, not an escalated failure.
	ErrDuplicateRegistration = &Error{code: "DUPLICATE_REGISTRATION", msg: "already registered"}
	// ErrNotVerified reports an unverified user attempting a verified-only flow.
	ErrNotVerified = &Error{code: "NOT_VERIFIED", msg: "user is not verified"}
	// ErrLectureClosed reports a registration against a lecture that is not
	// accepting attendees (pending or rejected).
	ErrLectureClosed = &Error{code: "LECTURE_CLOSED", msg: "lecture is not open for registration"}
)

// StoreError wraps a failed persistence operation with its cause text so the
// requester sees a generic failure message that still names the cause.
func StoreError(op string, err error) error {
	return fmt.Errorf("store %s: %w", op, err)
}

// IsNotFound reports whether err is ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsDuplicate reports whether err is ErrDuplicateRegistration.
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicateRegistration) }
