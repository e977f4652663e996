// Package memory provides an in-process TokenStore, the default choice
// for tests and single-process hosts.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/skygeario/skygear-go/store"
)

// TokenStore holds a single access token in memory.
type TokenStore struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// New creates a new in-memory token store.
func New() *TokenStore {
	return &TokenStore{}
}

// Get retrieves the stored access token.
func (s *TokenStore) Get(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", store.ErrTokenNotFound
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return "", store.ErrTokenNotFound
	}
	return s.token, nil
}

// Set stores the access token with an optional TTL.
func (s *TokenStore) Set(ctx context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	if ttl > 0 {
		s.expiresAt = time.Now().Add(ttl)
	} else {
		s.expiresAt = time.Time{}
	}
	return nil
}

// Delete removes the stored access token.
func (s *TokenStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.expiresAt = time.Time{}
	return nil
}
