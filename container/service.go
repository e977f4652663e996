package container

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/skygeario/skygear-go/skyerr"
	"github.com/skygeario/skygear-go/store"
)

// Container is a configured client instance. It owns the access token;
// every other piece of state is immutable after New. Containers are
// independent of each other, so tests can run several side by side.
type Container struct {
	config Config

	httpClient   HTTPClient
	refreshToken RefreshTokenFunc
	extraInfo    ExtraInfoFunc
	tokenStore   store.TokenStore

	// Endpoints derived from config.Endpoint; re-derived by SetEndpoint.
	mu            sync.RWMutex
	endpoint      string
	authEndpoint  string
	assetEndpoint string
	accessToken   string
}

// New creates a new client container with the given config. When a
// token store is configured, a previously persisted access token is
// loaded eagerly.
func New(cfg Config) (*Container, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Container{
		config:       cfg,
		httpClient:   cfg.HTTPClient,
		refreshToken: cfg.RefreshToken,
		extraInfo:    cfg.ExtraInfo,
		tokenStore:   cfg.TokenStore,
	}
	if c.httpClient == nil {
		c.httpClient = DefaultHTTPClient(cfg.Timeout)
	}

	if err := c.SetEndpoint(cfg.Endpoint); err != nil {
		return nil, err
	}

	if c.tokenStore != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		token, err := c.tokenStore.Get(ctx)
		switch {
		case err == nil:
			c.accessToken = token
		case errors.Is(err, store.ErrTokenNotFound):
			// first run, nothing persisted yet
		default:
			return nil, fmt.Errorf("failed to load access token: %w", err)
		}
	}

	return c, nil
}

// NewFromEnv creates a container configured from SKYGEAR_* environment
// variables.
func NewFromEnv() (*Container, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(*cfg)
}

// SetEndpoint replaces the base endpoint and re-derives the gear
// endpoints. Fails without touching state if derivation fails.
func (c *Container) SetEndpoint(endpoint string) error {
	authEndpoint, err := GearEndpoint(endpoint, GearAuth)
	if err != nil {
		return err
	}
	assetEndpoint, err := GearEndpoint(endpoint, GearAsset)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpoint = endpoint
	c.authEndpoint = authEndpoint
	c.assetEndpoint = assetEndpoint
	return nil
}

// Endpoint returns the configured base endpoint.
func (c *Container) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// AuthEndpoint returns the derived auth gear endpoint.
func (c *Container) AuthEndpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authEndpoint
}

// AssetEndpoint returns the derived asset gear endpoint.
func (c *Container) AssetEndpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.assetEndpoint
}

// APIKey returns the configured API key.
func (c *Container) APIKey() string {
	return c.config.APIKey
}

// CallbackURL returns the configured default OAuth callback URL.
func (c *Container) CallbackURL() string {
	return c.config.CallbackURL
}

// AccessToken returns the current access token, or "" when none is set.
func (c *Container) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// SetAccessToken replaces the access token and persists it to the token
// store when one is configured. ttl bounds the persisted entry only;
// the in-memory token never expires on its own.
func (c *Container) SetAccessToken(ctx context.Context, token string, ttl time.Duration) error {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()

	if c.tokenStore != nil {
		if err := c.tokenStore.Set(ctx, token, ttl); err != nil {
			return fmt.Errorf("failed to persist access token: %w", err)
		}
	}
	return nil
}

// ClearAccessToken drops the access token, in memory and in the store.
func (c *Container) ClearAccessToken(ctx context.Context) error {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()

	if c.tokenStore != nil {
		if err := c.tokenStore.Delete(ctx); err != nil {
			return fmt.Errorf("failed to clear access token: %w", err)
		}
	}
	return nil
}

// fetchState tracks the pipeline's position in the refresh-and-retry
// cycle. The Retried state is terminal: a retry's own stale-token
// header is never acted on.
type fetchState int

const (
	stateInitial fetchState = iota
	stateRefreshing
	stateRetried
)

// FetchRaw executes one logical API call against the auth gear and
// returns the raw value under the envelope's "result" key, or a decoded
// error. It performs one physical exchange, or two when a stale access
// token is refreshed.
func (c *Container) FetchRaw(ctx context.Context, req Request) (json.RawMessage, error) {
	requestURL, body, err := c.buildRequest(req)
	if err != nil {
		return nil, err
	}

	autoRefresh := c.refreshToken != nil
	if req.AutoRefreshToken != nil {
		autoRefresh = *req.AutoRefreshToken
	}

	state := stateInitial
	var resp *http.Response
	for {
		httpReq, err := c.newHTTPRequest(ctx, req.Method, requestURL, body)
		if err != nil {
			return nil, err
		}

		if c.config.Debug {
			log.Printf("[SKYGEAR] %s %s", req.Method, requestURL)
		}

		resp, err = c.httpClient.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}

		if state == stateRetried {
			break
		}
		if !autoRefresh || resp.Header.Get(HeaderTryRefreshToken) != "true" {
			break
		}

		// Stale-token signal. A retry without a refresh capability is a
		// configuration error, not something to decode around.
		if c.refreshToken == nil {
			discard(resp)
			return nil, ErrMissingRefreshFunc
		}

		state = stateRefreshing
		if c.config.Debug {
			log.Printf("[SKYGEAR] stale access token, refreshing")
		}
		refreshed, err := c.refreshToken(ctx)
		if err != nil {
			discard(resp)
			return nil, fmt.Errorf("failed to refresh access token: %w", err)
		}
		if !refreshed {
			// Refresh declined; the original response's decode outcome
			// stands.
			break
		}

		discard(resp)
		state = stateRetried
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return skyerr.DecodeStatus(resp.StatusCode, payload)
}

// Fetch executes a logical call and decodes the result value into T.
func Fetch[T any](ctx context.Context, c *Container, req Request) (T, error) {
	var out T
	raw, err := c.FetchRaw(ctx, req)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %v", skyerr.ErrFailedToDecode, err)
	}
	return out, nil
}

// buildRequest resolves the request URL and serializes the payload
// once; both are reused verbatim on a retry.
func (c *Container) buildRequest(req Request) (string, []byte, error) {
	requestURL := strings.TrimSuffix(c.AuthEndpoint(), "/") + req.Path
	if len(req.Query) > 0 {
		requestURL += "?" + req.Query.Encode()
	}

	var body []byte
	if req.Payload != nil {
		var err error
		body, err = json.Marshal(req.Payload)
		if err != nil {
			return "", nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
	}
	return requestURL, body, nil
}

// newHTTPRequest builds a physical request. Headers reflect the
// container's state at this moment, not at descriptor construction
// time, so a retry picks up a token refreshed in between.
func (c *Container) newHTTPRequest(ctx context.Context, method, requestURL string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set(HeaderAPIKey, c.config.APIKey)
	if token := c.AccessToken(); token != "" {
		httpReq.Header.Set("Authorization", "bearer "+token)
	}
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.extraInfo != nil {
		info, err := c.extraInfo(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get extra session info: %w", err)
		}
		if info != nil {
			encoded, err := json.Marshal(info)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal extra session info: %w", err)
			}
			httpReq.Header.Set(HeaderExtraInfo, base64.StdEncoding.EncodeToString(encoded))
		}
	}

	return httpReq, nil
}

// discard releases a response we will not decode.
func discard(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
