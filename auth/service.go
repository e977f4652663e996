package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/skygeario/skygear-go/container"
	"github.com/skygeario/skygear-go/skyerr"
)

// Service exposes the auth gear's operations. It wraps a configured
// container and tracks at most one in-flight authentication attempt.
type Service struct {
	container *container.Container

	mu                sync.Mutex
	authnSessionToken string
}

// New creates an auth service on top of a configured container.
func New(c *container.Container) *Service {
	return &Service{container: c}
}

// Container returns the underlying container.
func (s *Service) Container() *container.Container {
	return s.container
}

// AuthnSessionToken returns the held authentication session token, or
// "" when no attempt is pending.
func (s *Service) AuthnSessionToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authnSessionToken
}

func (s *Service) setSessionToken(token string) {
	s.mu.Lock()
	s.authnSessionToken = token
	s.mu.Unlock()
}

// mergeSessionToken threads the held session token into an MFA-step
// payload. The field is omitted entirely when no attempt is pending.
func (s *Service) mergeSessionToken(payload map[string]any) map[string]any {
	if token := s.AuthnSessionToken(); token != "" {
		payload["authn_session_token"] = token
	}
	return payload
}

// post runs one POST through the pipeline.
func (s *Service) post(ctx context.Context, path string, payload map[string]any) (json.RawMessage, error) {
	return s.container.FetchRaw(ctx, container.Request{
		Method:  http.MethodPost,
		Path:    path,
		Payload: payload,
	})
}

// handleAuthResult decodes a login-style result value and applies its
// side effects: a complete response installs the access token and
// discards the session token; a partial one retains the fresh session
// token for the next step.
func (s *Service) handleAuthResult(ctx context.Context, raw json.RawMessage) (*AuthResult, error) {
	var payload struct {
		AuthResponse
		AuthnSessionToken string         `json:"authn_session_token"`
		MFA               map[string]any `json:"mfa"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", skyerr.ErrFailedToDecode, err)
	}

	if payload.AccessToken != "" {
		if err := s.container.SetAccessToken(ctx, payload.AccessToken, TokenTTL(payload.AccessToken)); err != nil {
			return nil, err
		}
		s.setSessionToken("")
		resp := payload.AuthResponse
		return &AuthResult{State: StateAuthenticated, Response: &resp}, nil
	}

	if payload.AuthnSessionToken != "" {
		s.setSessionToken(payload.AuthnSessionToken)
		return &AuthResult{
			State: StatePendingMFA,
			Challenge: &MFAChallenge{
				AuthnSessionToken: payload.AuthnSessionToken,
				MFA:               payload.MFA,
			},
		}, nil
	}

	return nil, ErrUnexpectedResponse
}

// Signup registers a new user with one or more login identifiers.
func (s *Service) Signup(ctx context.Context, loginIDs []LoginID, password string, opts *SignupOptions) (*AuthResult, error) {
	for _, loginID := range loginIDs {
		if err := loginID.validate(); err != nil {
			return nil, err
		}
	}

	payload := map[string]any{
		"login_ids": loginIDs,
		"password":  password,
	}
	if opts != nil {
		if opts.Realm != "" {
			payload["realm"] = opts.Realm
		}
		if opts.Metadata != nil {
			payload["metadata"] = opts.Metadata
		}
	}

	raw, err := s.post(ctx, "/_auth/signup", payload)
	if err != nil {
		return nil, err
	}
	return s.handleAuthResult(ctx, raw)
}

// SignupWithEmail registers a new user keyed by email address.
func (s *Service) SignupWithEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	return s.Signup(ctx, []LoginID{{"email": email}}, password, nil)
}

// SignupWithUsername registers a new user keyed by username.
func (s *Service) SignupWithUsername(ctx context.Context, username, password string) (*AuthResult, error) {
	return s.Signup(ctx, []LoginID{{"username": username}}, password, nil)
}

// Login authenticates a login identifier with a password. The result is
// complete, or pending when the user has MFA enabled.
func (s *Service) Login(ctx context.Context, loginID LoginID, password string, opts *LoginOptions) (*AuthResult, error) {
	if err := loginID.validate(); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"login_id": loginID,
		"password": password,
	}
	if opts != nil && opts.Realm != "" {
		payload["realm"] = opts.Realm
	}

	raw, err := s.post(ctx, "/_auth/login", payload)
	if err != nil {
		return nil, err
	}
	return s.handleAuthResult(ctx, raw)
}

// LoginWithEmail authenticates by email address.
func (s *Service) LoginWithEmail(ctx context.Context, email, password string) (*AuthResult, error) {
	return s.Login(ctx, LoginID{"email": email}, password, nil)
}

// LoginWithUsername authenticates by username.
func (s *Service) LoginWithUsername(ctx context.Context, username, password string) (*AuthResult, error) {
	return s.Login(ctx, LoginID{"username": username}, password, nil)
}

// LoginWithCustomToken authenticates with a token minted by the host's
// own backend.
func (s *Service) LoginWithCustomToken(ctx context.Context, token string) (*AuthResult, error) {
	raw, err := s.post(ctx, "/_auth/sso/custom_token/login", map[string]any{
		"token": token,
	})
	if err != nil {
		return nil, err
	}
	return s.handleAuthResult(ctx, raw)
}

// Logout ends the current session. Local credential state is dropped
// whether or not the service call succeeds; a dead session is not worth
// keeping either way.
func (s *Service) Logout(ctx context.Context) error {
	_, err := s.post(ctx, "/_auth/logout", map[string]any{})

	s.setSessionToken("")
	if clearErr := s.container.ClearAccessToken(ctx); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// Me fetches the current user.
func (s *Service) Me(ctx context.Context) (*User, error) {
	raw, err := s.post(ctx, "/_auth/me", map[string]any{})
	if err != nil {
		return nil, err
	}
	result, err := s.handleAuthResult(ctx, raw)
	if err != nil {
		return nil, err
	}
	if result.State != StateAuthenticated {
		return nil, ErrUnexpectedResponse
	}
	return result.Response.User, nil
}

// ChangePassword replaces the current user's password. The service
// issues a fresh access token with the response.
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) (*AuthResult, error) {
	raw, err := s.post(ctx, "/_auth/change_password", map[string]any{
		"old_password": oldPassword,
		"password":     newPassword,
	})
	if err != nil {
		return nil, err
	}
	return s.handleAuthResult(ctx, raw)
}

// ListSessions lists the current user's sessions.
func (s *Service) ListSessions(ctx context.Context) ([]Session, error) {
	raw, err := s.post(ctx, "/_auth/session/list", map[string]any{})
	if err != nil {
		return nil, err
	}
	var result struct {
		Sessions []Session `json:"sessions"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", skyerr.ErrFailedToDecode, err)
	}
	return result.Sessions, nil
}

// RevokeSession revokes one session by ID.
func (s *Service) RevokeSession(ctx context.Context, sessionID string) error {
	_, err := s.post(ctx, "/_auth/session/revoke", map[string]any{
		"session_id": sessionID,
	})
	return err
}

// RevokeOtherSessions revokes every session except the current one.
func (s *Service) RevokeOtherSessions(ctx context.Context) error {
	_, err := s.post(ctx, "/_auth/session/revoke_all", map[string]any{})
	return err
}
