package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error by how callers must react to it.
//
// Config and Schema errors are fatal: they are raised at construction time and
// the memory system cannot operate past them. Write errors always surface to
// the caller, because a silently lost write is unacceptable. Read errors are
// logged and degraded to empty results by the stores, never propagated.
// Analysis errors fall back to a neutral classification and the write
// proceeds.
type Kind string

const (
	// KindConfig covers missing or invalid connection parameters.
	KindConfig Kind = "CONFIG"

	// KindSchema covers failed constraint or index bootstrapping.
	KindSchema Kind = "SCHEMA"

	// KindWrite covers failed graph writes (constraint violations,
	// transient connectivity during a write).
	KindWrite Kind = "WRITE"

	// KindRead covers failed graph reads.
	KindRead Kind = "READ"

	// KindAnalysis covers malformed analyzer output.
	KindAnalysis Kind = "ANALYSIS"

	// KindConflict covers uniqueness-constraint violations.
	KindConflict Kind = "CONFLICT"

	// KindTimeout covers per-operation deadline expiry at the graph
	// session boundary. Timeouts are retryable.
	KindTimeout Kind = "TIMEOUT"
)

// Error is the module's error type. It carries a Kind for dispatch, a
// human-readable message, an optional wrapped cause, and a Retryable flag for
// transient failures.
type Error struct {
	Kind      Kind
	Message   string
	Cause     error
	Retryable bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// NewConfigError creates a fatal configuration error.
func NewConfigError(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

// NewSchemaError creates a fatal schema-bootstrap error.
func NewSchemaError(message string, cause error) *Error {
	return &Error{Kind: KindSchema, Message: message, Cause: cause}
}

// NewWriteError creates a write-path error. Write errors always surface to
// the caller.
func NewWriteError(message string, cause error) *Error {
	return &Error{Kind: KindWrite, Message: message, Cause: cause}
}

// NewReadError creates a read-path error. Stores log these and degrade to
// empty results.
func NewReadError(message string, cause error) *Error {
	return &Error{Kind: KindRead, Message: message, Cause: cause}
}

// NewAnalysisError creates a classification error. Callers fall back to a
// neutral value and proceed.
func NewAnalysisError(message string, cause error) *Error {
	return &Error{Kind: KindAnalysis, Message: message, Cause: cause}
}

// NewConflictError creates a uniqueness-violation error.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewTimeoutError creates a retryable timeout error.
func NewTimeoutError(message string, cause error) *Error {
	return &Error{Kind: KindTimeout, Message: message, Cause: cause, Retryable: true}
}

// KindOf extracts the Kind from an error chain, or "" if the chain contains
// no *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether the error chain contains an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// IsFatal reports whether the error is one the memory system cannot operate
// past (configuration or schema bootstrap).
func IsFatal(err error) bool {
	k := KindOf(err)
	return k == KindConfig || k == KindSchema
}

// IsRetryable reports whether the operation may be retried.
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// Is, As and Unwrap re-exports so callers need only this package.

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
