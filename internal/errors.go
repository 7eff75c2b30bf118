package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for dispatch resolution and authorization.
var (
	// ErrUnknownResource is returned when no action matches a public path
	// and no default action is registered.
	ErrUnknownResource = errors.New("dispatch: unknown resource")

	// ErrPrivateResource is returned when the requested path starts with
	// the private-action sentinel. Private actions are never path-reachable.
	ErrPrivateResource = errors.New("dispatch: private resource requested")

	// ErrAuthorizationDenied is returned when an action's required roles
	// are not granted for the current request.
	ErrAuthorizationDenied = errors.New("dispatch: authorization denied")
)

// ConfigError is a startup-fatal configuration error: malformed attribute
// syntax, an unknown behavior tag, an invalid regex pattern. It stops
// application assembly and is never produced per-request.
type ConfigError struct {
	Err    error
	Action string // reverse path of the offending action, if known
	Tag    string // raw attribute tag that failed, if any
}

func (e *ConfigError) Error() string {
	switch {
	case e.Action != "" && e.Tag != "":
		return fmt.Sprintf("dispatch config: action %q tag %q: %v", e.Action, e.Tag, e.Err)
	case e.Action != "":
		return fmt.Sprintf("dispatch config: action %q: %v", e.Action, e.Err)
	default:
		return fmt.Sprintf("dispatch config: %v", e.Err)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PhaseError records a failure inside a lifecycle phase, including panics
// recovered during handler execution.
type PhaseError struct {
	Err   error
	Phase string // "begin", "auto", "action" or "end"
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("dispatch: %s phase: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// HTTPError represents an HTTP error with the data needed for rendering.
// It implements the error interface and carries structured fields for
// error handlers to build responses from.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// RequestID is the request tracking ID.
	RequestID string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// AsHTTPError extracts the HTTPError from an error chain if present.
// Returns nil if the error is not an HTTPError.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// statusFor maps dispatch errors to HTTP status codes for the default
// error handler. Resolution failures render as 404 so private paths are
// indistinguishable from missing ones to clients; logs keep the distinction.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnknownResource), errors.Is(err, ErrPrivateResource):
		return http.StatusNotFound
	case errors.Is(err, ErrAuthorizationDenied):
		return http.StatusForbidden
	default:
		if httpErr := AsHTTPError(err); httpErr != nil {
			return httpErr.Code
		}
		return http.StatusInternalServerError
	}
}
