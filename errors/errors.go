// Package errors provides the evaluation-error model for the federation
// adapter. Every failure that crosses the engine boundary is an *EvalError
// carrying one of a small set of kinds, so the engine can decide policy
// (fail the query, treat the service call as empty) without inspecting
// transport or parser internals.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies an evaluation failure.
type Kind int

const (
	// KindUnsupportedIdentifier means the claim check failed. The engine
	// should never reach evaluation in this state; treat as a selection bug.
	KindUnsupportedIdentifier Kind = iota
	// KindHTTPStatus means the remote responded with a non-success status.
	KindHTTPStatus
	// KindTransport means a connection, timeout, or stream failure.
	KindTransport
	// KindParse means the response body did not conform to the expected
	// result format.
	KindParse
	// KindCancelled means the caller aborted an in-flight request.
	KindCancelled
	// KindInvalid means invalid input or configuration.
	KindInvalid
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindUnsupportedIdentifier:
		return "unsupported_identifier"
	case KindHTTPStatus:
		return "http_status"
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	case KindCancelled:
		return "cancelled"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	ErrUnsupportedIdentifier = errors.New("identifier not claimed by this service")
	ErrHTTPStatus            = errors.New("remote returned non-success status")
	ErrTransport             = errors.New("transport failure")
	ErrParse                 = errors.New("result document parsing failed")
	ErrCancelled             = errors.New("evaluation cancelled")

	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("missing required configuration")
)

// EvalError wraps an error with its kind and origin. It is the single
// failure type the adapter surfaces to the engine.
type EvalError struct {
	Kind      Kind
	Err       error
	Message   string
	Component string
	Operation string

	// Status holds the HTTP status code for KindHTTPStatus, zero otherwise.
	Status int
}

// Error implements the error interface.
func (ee *EvalError) Error() string {
	if ee.Message != "" {
		return ee.Message
	}
	return ee.Err.Error()
}

// Unwrap returns the underlying error.
func (ee *EvalError) Unwrap() error {
	return ee.Err
}

// newEval creates a new kinded error.
// Internal helper - use the Wrap* constructors instead.
func newEval(kind Kind, err error, component, operation, message string) *EvalError {
	return &EvalError{
		Kind:      kind,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapUnsupported wraps an error as an unsupported-identifier failure.
func WrapUnsupported(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, component, method, action)
	return newEval(KindUnsupportedIdentifier, wrapped, component, method, wrapped.Error())
}

// WrapHTTPStatus creates an HTTP-status failure carrying the observed code.
func WrapHTTPStatus(status int, component, method string) error {
	wrapped := fmt.Errorf("%s.%s: remote evaluation returned HTTP response code %d: %w",
		component, method, status, ErrHTTPStatus)
	ee := newEval(KindHTTPStatus, wrapped, component, method, wrapped.Error())
	ee.Status = status
	return ee
}

// WrapTransport wraps an error as a transport failure with context.
func WrapTransport(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, component, method, action)
	return newEval(KindTransport, wrapped, component, method, wrapped.Error())
}

// WrapParse wraps an error as a parse failure with context.
func WrapParse(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, component, method, action)
	return newEval(KindParse, wrapped, component, method, wrapped.Error())
}

// WrapCancelled wraps an error as a caller-initiated cancellation.
func WrapCancelled(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, component, method, action)
	return newEval(KindCancelled, wrapped, component, method, wrapped.Error())
}

// WrapInvalid wraps an error as invalid input or configuration.
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, component, method, action)
	return newEval(KindInvalid, wrapped, component, method, wrapped.Error())
}

// KindOf returns the kind of an evaluation error. Unclassified errors
// report KindTransport when they look like cancellation fallout and
// KindInvalid otherwise, so nothing escapes the kind taxonomy.
func KindOf(err error) Kind {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCancelled
	}
	return KindInvalid
}

// IsCancelled reports whether an error is a caller-initiated cancellation.
func IsCancelled(err error) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == KindCancelled
}

// IsParse reports whether an error is a result-format conformance failure.
func IsParse(err error) bool {
	if err == nil {
		return false
	}
	var ee *EvalError
	return errors.As(err, &ee) && ee.Kind == KindParse
}

// IsTransport reports whether an error is a connection or stream failure.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var ee *EvalError
	return errors.As(err, &ee) && ee.Kind == KindTransport
}

// IsHTTPStatus reports whether an error is a non-success remote status,
// returning the observed code when it is.
func IsHTTPStatus(err error) (int, bool) {
	var ee *EvalError
	if errors.As(err, &ee) && ee.Kind == KindHTTPStatus {
		return ee.Status, true
	}
	return 0, false
}
