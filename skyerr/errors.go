package skyerr

import (
	"errors"
	"fmt"
)

// Package-level errors
var (
	// ErrMalformedEnvelope indicates a response carrying neither a usable
	// result nor a usable error member
	ErrMalformedEnvelope = errors.New("malformed response envelope")

	// ErrFailedToDecode indicates a response body that is not valid JSON
	ErrFailedToDecode = errors.New("failed to decode response")

	// ErrNotAuthenticated indicates the request requires an authenticated user
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidCredentials indicates a rejected login ID / password pair
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPermissionDenied indicates the authenticated user lacks access
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidArgument indicates the service rejected the request payload
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrResourceNotFound indicates the addressed resource does not exist
	ErrResourceNotFound = errors.New("resource not found")

	// ErrUnexpectedError indicates an internal error on the service side
	ErrUnexpectedError = errors.New("unexpected server error")
)

// Error represents a structured error decoded from the service's error
// envelope. Kind is the broad category (the wire "name" field), Name the
// specific identifier (the wire "reason" field).
type Error struct {
	Kind    string         `json:"name"`
	Name    string         `json:"reason"`
	Message string         `json:"message"`
	Code    int            `json:"code,omitempty"`
	Info    map[string]any `json:"info,omitempty"`

	err error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("skygear error [%s/%s]: %s", e.Kind, e.Name, e.Message)
	}
	return fmt.Sprintf("skygear error [%s/%s]", e.Kind, e.Name)
}

// Unwrap returns the sentinel mapped from the error kind, if any
func (e *Error) Unwrap() error {
	return e.err
}

// Is checks if the error matches a target error
func (e *Error) Is(target error) bool {
	if e.err != nil {
		return errors.Is(e.err, target)
	}
	return false
}

// newError maps well-known kinds to sentinels so callers can match with
// errors.Is without string comparison.
func newError(kind, name, message string, code int, info map[string]any) *Error {
	e := &Error{
		Kind:    kind,
		Name:    name,
		Message: message,
		Code:    code,
		Info:    info,
	}

	switch kind {
	case "NotAuthenticated":
		e.err = ErrNotAuthenticated
	case "AuthenticationFailed":
		e.err = ErrInvalidCredentials
	case "PermissionDenied", "Forbidden":
		e.err = ErrPermissionDenied
	case "Invalid", "BadRequest":
		e.err = ErrInvalidArgument
	case "ResourceNotFound":
		e.err = ErrResourceNotFound
	case "UnexpectedError", "InternalError":
		e.err = ErrUnexpectedError
	}

	return e
}

// StatusError reports a non-2xx response whose body could not be decoded
// as a service envelope. The numeric status is all the client knows.
type StatusError struct {
	StatusCode int
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}
