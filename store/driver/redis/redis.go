// Package redis provides a Redis-backed TokenStore so hosts can share a
// client's access token across processes.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skygeario/skygear-go/store"
)

const defaultKey = "skygear:access_token"

// Config holds Redis specific configuration
type Config struct {
	// Connection
	Host     string
	Port     string
	Password string
	Database int
	URL      string

	// Key is the Redis key holding the token (default "skygear:access_token").
	// Hosts serving multiple clients set a distinct key per client.
	Key string
}

// TokenStore implements store.TokenStore on Redis.
type TokenStore struct {
	client redis.UniversalClient
	key    string
}

// New creates a new Redis token store and verifies connectivity.
func New(cfg Config) (*TokenStore, error) {
	opts := &redis.UniversalOptions{
		Addrs:    []string{buildAddr(cfg)},
		Password: cfg.Password,
		DB:       cfg.Database,
	}

	// Use URL if provided
	if cfg.URL != "" {
		opt, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		opts = &redis.UniversalOptions{
			Addrs:    []string{opt.Addr},
			Password: opt.Password,
			DB:       opt.DB,
		}
		if opt.TLSConfig != nil {
			opts.TLSConfig = opt.TLSConfig
		}
	}

	client := redis.NewUniversalClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = defaultKey
	}

	return &TokenStore{client: client, key: key}, nil
}

// Get retrieves the persisted access token.
func (s *TokenStore) Get(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", store.ErrTokenNotFound
		}
		return "", err
	}
	return val, nil
}

// Set stores the access token with an optional TTL.
func (s *TokenStore) Set(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key, token, ttl).Err()
}

// Delete removes the persisted access token.
func (s *TokenStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// Close closes the Redis connection.
func (s *TokenStore) Close() error {
	return s.client.Close()
}

// buildAddr builds the Redis address from config
func buildAddr(cfg Config) string {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == "" {
		cfg.Port = "6379"
	}
	return fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
}
