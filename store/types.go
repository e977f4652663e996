// Package store defines the token persistence collaborator used by the
// container. Persistence is optional: the request pipeline itself never
// touches a store directly, it only invokes one at defined points (load
// on configure, save on token change, delete on logout).
package store

import (
	"context"
	"errors"
	"time"
)

// ErrTokenNotFound indicates no token is persisted for this client.
var ErrTokenNotFound = errors.New("access token not found")

// TokenStore persists a single client's access token. Implementations
// must be safe for concurrent use.
type TokenStore interface {
	// Get retrieves the persisted access token
	Get(ctx context.Context) (string, error)

	// Set stores the access token with an optional TTL (0 = no expiry)
	Set(ctx context.Context, token string, ttl time.Duration) error

	// Delete removes the persisted access token
	Delete(ctx context.Context) error
}
