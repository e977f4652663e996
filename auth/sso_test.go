package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skygeario/skygear-go/auth"
	"github.com/skygeario/skygear-go/container"
)

func TestLoginAuthorizationURL(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPayload = decodePayload(t, r)
		w.Write([]byte(`{"result": "https://accounts.example.com/oauth/authorize?client_id=x"}`))
	}))
	defer server.Close()

	svc := newTestService(t, server, container.Config{
		CallbackURL: "https://app.example.com/callback",
	})

	authURL, err := svc.LoginAuthorizationURL(context.Background(), "google", nil)
	if err != nil {
		t.Fatalf("LoginAuthorizationURL() error = %v", err)
	}

	if gotPath != "/_auth/sso/google/login_auth_url" {
		t.Errorf("path = %q, want /_auth/sso/google/login_auth_url", gotPath)
	}
	if gotPayload["callback_url"] != "https://app.example.com/callback" {
		t.Errorf("callback_url = %v, want configured default", gotPayload["callback_url"])
	}
	if gotPayload["ux_mode"] != "web_redirect" {
		t.Errorf("ux_mode = %v, want web_redirect default", gotPayload["ux_mode"])
	}
	if state, ok := gotPayload["state"].(string); !ok || state == "" {
		t.Errorf("state = %v, want a non-empty string", gotPayload["state"])
	}
	if authURL != "https://accounts.example.com/oauth/authorize?client_id=x" {
		t.Errorf("authURL = %q", authURL)
	}
}

func TestAuthorizationURLOptions(t *testing.T) {
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPayload = decodePayload(t, r)
		w.Write([]byte(`{"result": "https://example.com/authorize"}`))
	}))
	defer server.Close()

	svc := newTestService(t, server, container.Config{
		CallbackURL: "https://app.example.com/callback",
	})

	_, err := svc.LinkAuthorizationURL(context.Background(), "facebook", &auth.SSOOptions{
		CallbackURL:     "https://app.example.com/other",
		UXMode:          "web_popup",
		MergeRealm:      "admin",
		OnUserDuplicate: "merge",
	})
	if err != nil {
		t.Fatalf("LinkAuthorizationURL() error = %v", err)
	}

	if gotPayload["callback_url"] != "https://app.example.com/other" {
		t.Errorf("callback_url = %v, want option to win over config", gotPayload["callback_url"])
	}
	if gotPayload["ux_mode"] != "web_popup" {
		t.Errorf("ux_mode = %v, want web_popup", gotPayload["ux_mode"])
	}
	if gotPayload["merge_realm"] != "admin" {
		t.Errorf("merge_realm = %v, want admin", gotPayload["merge_realm"])
	}
	if gotPayload["on_user_duplicate"] != "merge" {
		t.Errorf("on_user_duplicate = %v, want merge", gotPayload["on_user_duplicate"])
	}
}

func TestAuthorizationURLMissingCallback(t *testing.T) {
	svc := newOfflineService(t, container.Config{})

	_, err := svc.LoginAuthorizationURL(context.Background(), "google", nil)
	if !errors.Is(err, auth.ErrMissingCallbackURL) {
		t.Errorf("LoginAuthorizationURL() error = %v, want ErrMissingCallbackURL", err)
	}
}

func TestAuthorizationURLEscapesProvider(t *testing.T) {
	var gotEscapedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEscapedPath = r.URL.EscapedPath()
		w.Write([]byte(`{"result": "https://example.com/authorize"}`))
	}))
	defer server.Close()

	svc := newTestService(t, server, container.Config{
		CallbackURL: "https://app.example.com/callback",
	})

	_, err := svc.LoginAuthorizationURL(context.Background(), "my provider", nil)
	if err != nil {
		t.Fatalf("LoginAuthorizationURL() error = %v", err)
	}
	if !strings.Contains(gotEscapedPath, "my%20provider") {
		t.Errorf("escaped path = %q, want provider percent-escaped", gotEscapedPath)
	}
}

func TestLoginOAuthProviderWithAccessToken(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPayload = decodePayload(t, r)
		w.Write([]byte(authenticatedEnvelope))
	}))
	defer server.Close()

	svc := newTestService(t, server, container.Config{})

	result, err := svc.LoginOAuthProviderWithAccessToken(context.Background(), "google", "provider-token")
	if err != nil {
		t.Fatalf("LoginOAuthProviderWithAccessToken() error = %v", err)
	}

	if gotPath != "/_auth/sso/google/login" {
		t.Errorf("path = %q, want /_auth/sso/google/login", gotPath)
	}
	if gotPayload["access_token"] != "provider-token" {
		t.Errorf("access_token = %v, want provider-token", gotPayload["access_token"])
	}
	if result.State != auth.StateAuthenticated {
		t.Errorf("State = %q, want %q", result.State, auth.StateAuthenticated)
	}
}

func TestUnlinkOAuthProvider(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"result": {}}`))
	}))
	defer server.Close()

	svc := newTestService(t, server, container.Config{})

	if err := svc.UnlinkOAuthProvider(context.Background(), "google"); err != nil {
		t.Fatalf("UnlinkOAuthProvider() error = %v", err)
	}
	if gotPath != "/_auth/sso/google/unlink" {
		t.Errorf("path = %q, want /_auth/sso/google/unlink", gotPath)
	}
}
