package auth

import (
	"time"
)

// State describes where a login attempt stands after an entry point
// returns without error.
type State string

const (
	// StateAuthenticated means the attempt is complete and the access
	// token is installed on the container.
	StateAuthenticated State = "authenticated"

	// StatePendingMFA means a second factor is still required; the
	// session token is held by the service and threaded automatically.
	StatePendingMFA State = "pending_mfa"
)

// AuthResult is the outcome of a login-style operation. Exactly one of
// Response and Challenge is set, according to State.
type AuthResult struct {
	State     State
	Response  *AuthResponse
	Challenge *MFAChallenge
}

// AuthResponse is a completed authentication: a user, the identity that
// logged in, and a usable access token.
type AuthResponse struct {
	User           *User     `json:"user"`
	Identity       *Identity `json:"identity"`
	AccessToken    string    `json:"access_token"`
	SessionID      string    `json:"session_id"`
	MFABearerToken string    `json:"mfa_bearer_token,omitempty"`
}

// MFAChallenge is a partial authentication: the session token chaining
// this attempt's steps, and the service's description of the second
// factors still required.
type MFAChallenge struct {
	AuthnSessionToken string         `json:"authn_session_token"`
	MFA               map[string]any `json:"mfa"`
}

// LoginID is a login identifier object, e.g. {"email": "a@b.com"}.
// Exactly one key/value pair is required.
type LoginID map[string]string

func (l LoginID) validate() error {
	if len(l) != 1 {
		return ErrInvalidLoginID
	}
	return nil
}

// User is the service's account record.
type User struct {
	ID          string         `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	LastLoginAt time.Time      `json:"last_login_at"`
	Verified    bool           `json:"is_verified"`
	Disabled    bool           `json:"is_disabled"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Identity is one way a user can log in: a login ID + password pair, an
// OAuth provider link, or a custom-token principal.
type Identity struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	LoginIDKey string         `json:"login_id_key,omitempty"`
	LoginID    string         `json:"login_id,omitempty"`
	Claims     map[string]any `json:"claims,omitempty"`
}

// Session is one authenticated session of the current user.
type Session struct {
	ID             string    `json:"id"`
	IdentityID     string    `json:"identity_id"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	UserAgent      string    `json:"user_agent,omitempty"`
	Name           string    `json:"name,omitempty"`
}

// Authenticator is an enrolled second factor.
type Authenticator struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"` // "totp" or "oob"
	CreatedAt   time.Time  `json:"created_at"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	Channel     string     `json:"channel,omitempty"` // oob: "sms" or "email"
	MaskedPhone string     `json:"masked_phone,omitempty"`
	MaskedEmail string     `json:"masked_email,omitempty"`
}

// TOTPEnrollment is the outcome of creating a new TOTP authenticator.
// The secret and otpauth URI are shown to the user exactly once.
type TOTPEnrollment struct {
	AuthenticatorID string `json:"authenticator_id"`
	Secret          string `json:"secret"`
	OTPAuthURI      string `json:"otpauth_uri"`
}

// OOBChannel selects the delivery channel of an out-of-band code.
type OOBChannel string

const (
	OOBChannelSMS   OOBChannel = "sms"
	OOBChannelEmail OOBChannel = "email"
)

// OOBEnrollment is the outcome of creating a new out-of-band
// authenticator.
type OOBEnrollment struct {
	AuthenticatorID string     `json:"authenticator_id"`
	Channel         OOBChannel `json:"channel"`
}

// SignupOptions carries the optional parts of a signup payload.
type SignupOptions struct {
	Realm    string
	Metadata map[string]any
}

// LoginOptions carries the optional parts of a login payload.
type LoginOptions struct {
	Realm string
}

// MFAAuthenticateOptions tweaks an MFA authentication step.
type MFAAuthenticateOptions struct {
	// RequestBearerToken asks the service for a bearer token that lets
	// this device skip MFA on future logins.
	RequestBearerToken bool
}

// SSOOptions tweaks OAuth authorization URL construction.
type SSOOptions struct {
	// CallbackURL overrides the container's configured callback URL.
	CallbackURL string

	// UXMode is "web_redirect" (default) or "web_popup".
	UXMode string

	// MergeRealm selects the password realm merged on duplicate users.
	MergeRealm string

	// OnUserDuplicate is "abort" (default), "merge" or "create".
	OnUserDuplicate string
}
