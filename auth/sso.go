package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/skygeario/skygear-go/skyerr"
)

// LoginAuthorizationURL asks the service for the OAuth authorization
// URL that logs a user in via the given provider. The caller navigates
// the user there; completion comes back through the callback URL.
func (s *Service) LoginAuthorizationURL(ctx context.Context, provider string, opts *SSOOptions) (string, error) {
	return s.authorizationURL(ctx, provider, "login_auth_url", opts)
}

// LinkAuthorizationURL asks the service for the OAuth authorization URL
// that links the provider to the current user.
func (s *Service) LinkAuthorizationURL(ctx context.Context, provider string, opts *SSOOptions) (string, error) {
	return s.authorizationURL(ctx, provider, "link_auth_url", opts)
}

func (s *Service) authorizationURL(ctx context.Context, provider, action string, opts *SSOOptions) (string, error) {
	if opts == nil {
		opts = &SSOOptions{}
	}

	callbackURL := opts.CallbackURL
	if callbackURL == "" {
		callbackURL = s.container.CallbackURL()
	}
	if callbackURL == "" {
		return "", ErrMissingCallbackURL
	}

	uxMode := opts.UXMode
	if uxMode == "" {
		uxMode = "web_redirect"
	}

	payload := map[string]any{
		"callback_url": callbackURL,
		"ux_mode":      uxMode,
		"state":        uuid.NewString(),
	}
	if opts.MergeRealm != "" {
		payload["merge_realm"] = opts.MergeRealm
	}
	if opts.OnUserDuplicate != "" {
		payload["on_user_duplicate"] = opts.OnUserDuplicate
	}

	raw, err := s.post(ctx, "/_auth/sso/"+url.PathEscape(provider)+"/"+action, payload)
	if err != nil {
		return "", err
	}

	var authURL string
	if err := json.Unmarshal(raw, &authURL); err != nil {
		return "", fmt.Errorf("%w: %v", skyerr.ErrFailedToDecode, err)
	}
	return authURL, nil
}

// LoginOAuthProviderWithAccessToken completes an OAuth login with an
// access token the host obtained from the provider directly.
func (s *Service) LoginOAuthProviderWithAccessToken(ctx context.Context, provider, accessToken string) (*AuthResult, error) {
	raw, err := s.post(ctx, "/_auth/sso/"+url.PathEscape(provider)+"/login", map[string]any{
		"access_token": accessToken,
	})
	if err != nil {
		return nil, err
	}
	return s.handleAuthResult(ctx, raw)
}

// LinkOAuthProviderWithAccessToken links the provider to the current
// user with a provider access token.
func (s *Service) LinkOAuthProviderWithAccessToken(ctx context.Context, provider, accessToken string) error {
	_, err := s.post(ctx, "/_auth/sso/"+url.PathEscape(provider)+"/link", map[string]any{
		"access_token": accessToken,
	})
	return err
}

// UnlinkOAuthProvider removes the provider link from the current user.
func (s *Service) UnlinkOAuthProvider(ctx context.Context, provider string) error {
	_, err := s.post(ctx, "/_auth/sso/"+url.PathEscape(provider)+"/unlink", map[string]any{})
	return err
}
