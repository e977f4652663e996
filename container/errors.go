package container

import "errors"

// Package-level errors
var (
	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidEndpoint indicates a base endpoint no gear endpoint can
	// be derived from
	ErrInvalidEndpoint = errors.New("invalid base endpoint")

	// ErrMissingRefreshFunc indicates a token refresh was requested but
	// no refresh capability is configured
	ErrMissingRefreshFunc = errors.New("token refresh requested but no refresh function configured")
)
