package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims parses the access token as a JWT and returns its
// registered claims without verifying the signature. The client has no
// key material; verification is the service's job. Opaque tokens fail
// to parse and that is fine.
func AccessTokenClaims(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// TokenTTL derives the remaining lifetime of an access token from its
// exp claim. Opaque tokens and tokens without exp get 0, which
// persistence layers treat as "no expiry".
func TokenTTL(token string) time.Duration {
	claims, err := AccessTokenClaims(token)
	if err != nil || claims.ExpiresAt == nil {
		return 0
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 0 {
		return 0
	}
	return ttl
}
