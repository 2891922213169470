// Package errs defines the error taxonomy the scheduling core raises, in
// the shape of internal/errors.APIError from the teacher project but
// generalized to a closed set of kinds instead of a flat string code, so
// callers can switch on Kind() rather than string-comparing codes.
package errs

import (
	"errors"
	"fmt"
)

// Kind is one of the error kinds from the taxonomy.
type Kind string

const (
	KindValidation        Kind = "VALIDATION_ERROR"
	KindNotFound          Kind = "NOT_FOUND"
	KindNoTasksForDate    Kind = "NO_TASKS_FOR_DATE"
	KindCycleDetected     Kind = "CYCLE_DETECTED"
	KindIllegalTransition Kind = "ILLEGAL_TRANSITION"
	KindInvalidDuration   Kind = "INVALID_DURATION"
	KindPartialApply      Kind = "PARTIAL_APPLY"
	KindStorageUnavailable Kind = "STORAGE_UNAVAILABLE"
	KindTimeout           Kind = "TIMEOUT"
)

// Error is the concrete error type raised by the core. Op names the
// operation that raised it (e.g. "scheduler.Generate"); Field names the
// offending field for validation/transition errors when applicable.
type Error struct {
	Kind    Kind
	Op      string
	Field   string
	Message string
	Cause   error

	// Outcomes carries the per-id results of a partially applied
	// multi-document write; only populated for KindPartialApply.
	Outcomes []Outcome
}

// Outcome records whether a single document write succeeded during a
// multi-document operation that failed partway through.
type Outcome struct {
	ID      string
	Applied bool
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s): %s", e.Op, e.Kind, e.Field, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target's Kind matches, so callers can use
// errors.Is(err, errs.New(errs.KindNotFound, "", "")) style checks, but
// more idiomatically should use errs.KindOf.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New constructs a taxonomy error.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap attaches operation context to an existing error without changing
// its kind. If err is not already a *Error, it is classified as
// StorageUnavailable, since that is the default kind for opaque
// collaborator failures (store, network) per spec.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		wrapped := *e
		if wrapped.Op == "" {
			wrapped.Op = op
		} else {
			wrapped.Op = op + " -> " + wrapped.Op
		}
		return &wrapped
	}
	return &Error{Kind: KindStorageUnavailable, Op: op, Message: err.Error(), Cause: err}
}

// Validation builds a KindValidation error for the named field.
func Validation(op, field, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Field: field, Message: message}
}

// NotFound builds a KindNotFound error.
func NotFound(op, message string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: message}
}

// CycleDetected builds a KindCycleDetected error naming one cycle edge.
func CycleDetected(op string, fromID, toID string) *Error {
	return &Error{
		Kind:    KindCycleDetected,
		Op:      op,
		Message: fmt.Sprintf("dependency cycle involves edge %s -> %s", fromID, toID),
	}
}

// IllegalTransition builds a KindIllegalTransition error for a status field.
func IllegalTransition(op, from, to string) *Error {
	return &Error{
		Kind:    KindIllegalTransition,
		Op:      op,
		Field:   "status",
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// InvalidDuration builds a KindInvalidDuration error.
func InvalidDuration(op, message string) *Error {
	return &Error{Kind: KindInvalidDuration, Op: op, Field: "duration", Message: message}
}

// PartialApply builds a KindPartialApply error carrying per-id outcomes.
func PartialApply(op string, outcomes []Outcome) *Error {
	return &Error{Kind: KindPartialApply, Op: op, Message: "one or more documents failed to update", Outcomes: outcomes}
}

// Timeout builds a KindTimeout error.
func Timeout(op string) *Error {
	return &Error{Kind: KindTimeout, Op: op, Message: "operation exceeded its deadline"}
}

// NoTasksForDate builds a KindNoTasksForDate error.
func NoTasksForDate(op string) *Error {
	return &Error{Kind: KindNoTasksForDate, Op: op, Message: "no candidate tasks for the requested date"}
}

// KindOf extracts the Kind from err, if it is (or wraps) a *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
