package auth

import "errors"

// Package-level errors
var (
	// ErrInvalidLoginID indicates a login identifier object not carrying
	// exactly one key/value pair
	ErrInvalidLoginID = errors.New("login ID must have exactly one key")

	// ErrMissingCallbackURL indicates an OAuth flow with no resolvable
	// callback URL
	ErrMissingCallbackURL = errors.New("no callback URL: pass one or configure CallbackURL")

	// ErrUnexpectedResponse indicates an auth response carrying neither
	// an access token nor an authentication session token
	ErrUnexpectedResponse = errors.New("unexpected auth response")
)
