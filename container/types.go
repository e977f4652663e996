package container

import (
	"context"
	"net/http"
	"net/url"
)

// Credential and signalling headers of the wire contract.
const (
	HeaderAPIKey          = "x-skygear-api-key"
	HeaderExtraInfo       = "x-skygear-extra-info"
	HeaderTryRefreshToken = "x-skygear-try-refresh-token"
)

// HTTPClient is the injected transport. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RefreshTokenFunc refreshes the access token out of band and reports
// whether a new token was obtained. It runs at most once per logical
// call, but is not serialized across concurrent calls; implementations
// must tolerate concurrent invocation or serialize themselves.
type RefreshTokenFunc func(ctx context.Context) (bool, error)

// ExtraInfoFunc supplies extra session info sent base64-encoded in the
// x-skygear-extra-info header. Returning a nil map omits the header.
type ExtraInfoFunc func(ctx context.Context) (map[string]any, error)

// Request describes one logical API call. A descriptor is immutable
// once constructed; the pipeline may turn it into two physical HTTP
// exchanges when a stale token is refreshed.
type Request struct {
	// Method is the HTTP verb (GET, POST or DELETE).
	Method string

	// Path is the endpoint path, e.g. "/_auth/login".
	Path string

	// Payload is the JSON request body; nil means no body.
	Payload map[string]any

	// Query holds URL query parameters, if any.
	Query url.Values

	// AutoRefreshToken overrides the refresh-and-retry default, which
	// is true iff a refresh function is configured.
	AutoRefreshToken *bool
}
