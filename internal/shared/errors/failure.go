// Package errors defines the structured failure results surfaced by the
// data-access layer and the business services, plus the HTTP envelope
// rendering for them.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for callers that need more than a message.
type Kind string

const (
	// KindConnectFailed means the pool could not establish or lease a
	// database connection.
	KindConnectFailed Kind = "connect_failed"
	// KindPoolExhausted means no connection became available within the
	// acquisition timeout.
	KindPoolExhausted Kind = "pool_exhausted"
	// KindRetriesExhausted wraps the last transient error after all
	// attempts were spent.
	KindRetriesExhausted Kind = "retries_exhausted"
	// KindNonTransientQuery covers constraint violations and malformed
	// statements; retrying cannot fix these.
	KindNonTransientQuery Kind = "non_transient_query"
	// KindProductNotFound is raised by the order workflow for an unknown
	// product identifier.
	KindProductNotFound Kind = "product_not_found"
	// KindInsufficientStock is raised when an order asks for more units
	// than are available.
	KindInsufficientStock Kind = "insufficient_stock"
	// KindNotFound is the generic missing-resource failure.
	KindNotFound Kind = "not_found"
	// KindValidation covers malformed or invariant-violating input.
	KindValidation Kind = "validation"
	// KindUnauthorized covers failed credential checks.
	KindUnauthorized Kind = "unauthorized"
	// KindInternal is the fallback for unexpected errors.
	KindInternal Kind = "internal"
)

// Failure is the structured error result every layer ultimately reports.
type Failure struct {
	Kind    Kind
	Message string
	Details map[string]any
	cause   error
}

// New builds a Failure with the given kind and message.
func New(kind Kind, message string) *Failure {
	return &Failure{Kind: kind, Message: message}
}

// Newf builds a Failure with a formatted message.
func Newf(kind Kind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a Failure that records err as its cause.
func Wrap(kind Kind, message string, err error) *Failure {
	return &Failure{Kind: kind, Message: message, cause: err}
}

func (f *Failure) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.cause)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.cause }

// WithDetail returns f with an additional structured detail attached.
func (f *Failure) WithDetail(key string, value any) *Failure {
	if f.Details == nil {
		f.Details = make(map[string]any)
	}
	f.Details[key] = value
	return f
}

// KindOf extracts the failure kind from an error chain. Unrecognized
// errors report KindInternal.
func KindOf(err error) Kind {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Kind
	}
	return KindInternal
}

// AsFailure normalizes any error into a Failure, preserving an existing
// one found in the chain.
func AsFailure(err error) *Failure {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}
	return Wrap(KindInternal, "unexpected error", err)
}

// HTTPStatus maps a failure kind onto the response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindInsufficientStock:
		return http.StatusBadRequest
	case KindNotFound, KindProductNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConnectFailed, KindPoolExhausted, KindRetriesExhausted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
