package container

import (
	"fmt"
	"time"

	"github.com/skygeario/skygear-go/config"
	"github.com/skygeario/skygear-go/store"
)

// Config holds the client configuration. APIKey and Endpoint are
// required; everything else is optional.
type Config struct {
	// APIKey is sent with every request in the x-skygear-api-key header.
	APIKey string `env:"API_KEY"`

	// Endpoint is the base endpoint, e.g. "https://myapp.skygear.dev".
	// The auth and asset gear endpoints are derived from it.
	Endpoint string `env:"ENDPOINT"`

	// UserAgent is sent as the user-agent header when set.
	UserAgent string `env:"USER_AGENT"`

	// CallbackURL is the default OAuth redirect target used when a flow
	// does not pass one explicitly.
	CallbackURL string `env:"CALLBACK_URL"`

	// Timeout applies to the default transport only. Injected
	// transports manage their own timeouts.
	Timeout time.Duration `env:"TIMEOUT,default:60s"`

	// Debug enables request/response logging.
	Debug bool `env:"DEBUG,default:false"`

	// HTTPClient is the injected transport; nil selects the default
	// retrying client.
	HTTPClient HTTPClient

	// RefreshToken is the optional refresh capability. Required
	// whenever a request forces AutoRefreshToken on.
	RefreshToken RefreshTokenFunc

	// ExtraInfo is the optional extra-session-info supplier.
	ExtraInfo ExtraInfoFunc

	// TokenStore optionally persists the access token across processes.
	TokenStore store.TokenStore
}

// GetConfig loads configuration from the environment (SKYGEAR_ prefix
// by default).
func GetConfig(opts ...config.LoadOptions) (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateConfig checks configuration validity
func validateConfig(cfg Config) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("%w: API key required", ErrInvalidConfig)
	}
	if cfg.Endpoint == "" {
		return fmt.Errorf("%w: endpoint required", ErrInvalidConfig)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("%w: timeout cannot be negative", ErrInvalidConfig)
	}
	return nil
}
