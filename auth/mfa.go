package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skygeario/skygear-go/skyerr"
)

// Every MFA operation threads the held authentication session token
// into its payload via mergeSessionToken. The same operations serve two
// contexts with identical payloads: completing a pending login, and
// managing authenticators for an already-authenticated user. The
// distinction is the caller's, not this layer's.

// CreateNewTOTP enrolls a new time-based OTP authenticator. The
// returned secret is only ever disclosed here; activation requires a
// code generated from it.
func (s *Service) CreateNewTOTP(ctx context.Context, displayName string) (*TOTPEnrollment, error) {
	payload := s.mergeSessionToken(map[string]any{
		"display_name": displayName,
	})
	raw, err := s.post(ctx, "/_auth/mfa/totp/new", payload)
	if err != nil {
		return nil, err
	}

	var enrollment TOTPEnrollment
	if err := json.Unmarshal(raw, &enrollment); err != nil {
		return nil, fmt.Errorf("%w: %v", skyerr.ErrFailedToDecode, err)
	}
	return &enrollment, nil
}

// ActivateTOTP proves possession of the enrolled TOTP secret and
// returns the user's recovery codes.
func (s *Service) ActivateTOTP(ctx context.Context, otp string) ([]string, error) {
	payload := s.mergeSessionToken(map[string]any{
		"otp": otp,
	})
	raw, err := s.post(ctx, "/_auth/mfa/totp/activate", payload)
	if err != nil {
		return nil, err
	}
	return decodeRecoveryCodes(raw)
}

// AuthenticateWithTOTP completes a pending login with a TOTP code.
func (s *Service) AuthenticateWithTOTP(ctx context.Context, otp string, opts *MFAAuthenticateOptions) (*AuthResult, error) {
	payload := s.mergeSessionToken(map[string]any{
		"otp": otp,
	})
	applyAuthenticateOptions(payload, opts)

	raw, err := s.post(ctx, "/_auth/mfa/totp/authenticate", payload)
	if err != nil {
		return nil, err
	}
	return s.handleAuthResult(ctx, raw)
}

// CreateNewOOB enrolls a new out-of-band authenticator on the given
// channel. Exactly one of phone and email must match the channel.
func (s *Service) CreateNewOOB(ctx context.Context, channel OOBChannel, phone, email string) (*OOBEnrollment, error) {
	payload := s.mergeSessionToken(map[string]any{
		"channel": channel,
	})
	if phone != "" {
		payload["phone"] = phone
	}
	if email != "" {
		payload["email"] = email
	}

	raw, err := s.post(ctx, "/_auth/mfa/oob/new", payload)
	if err != nil {
		return nil, err
	}

	var enrollment OOBEnrollment
	if err := json.Unmarshal(raw, &enrollment); err != nil {
		return nil, fmt.Errorf("%w: %v", skyerr.ErrFailedToDecode, err)
	}
	return &enrollment, nil
}

// TriggerOOB asks the service to deliver a fresh out-of-band code.
// authenticatorID may be empty when the user has only one OOB
// authenticator.
func (s *Service) TriggerOOB(ctx context.Context, authenticatorID string) error {
	payload := s.mergeSessionToken(map[string]any{})
	if authenticatorID != "" {
		payload["authenticator_id"] = authenticatorID
	}
	_, err := s.post(ctx, "/_auth/mfa/oob/trigger", payload)
	return err
}

// ActivateOOB proves receipt of the delivered code and returns the
// user's recovery codes.
func (s *Service) ActivateOOB(ctx context.Context, code string) ([]string, error) {
	payload := s.mergeSessionToken(map[string]any{
		"code": code,
	})
	raw, err := s.post(ctx, "/_auth/mfa/oob/activate", payload)
	if err != nil {
		return nil, err
	}
	return decodeRecoveryCodes(raw)
}

// AuthenticateWithOOB completes a pending login with a delivered code.
func (s *Service) AuthenticateWithOOB(ctx context.Context, code string, opts *MFAAuthenticateOptions) (*AuthResult, error) {
	payload := s.mergeSessionToken(map[string]any{
		"code": code,
	})
	applyAuthenticateOptions(payload, opts)

	raw, err := s.post(ctx, "/_auth/mfa/oob/authenticate", payload)
	if err != nil {
		return nil, err
	}
	return s.handleAuthResult(ctx, raw)
}

// AuthenticateWithRecoveryCode completes a pending login with one of
// the user's recovery codes. Each code works once.
func (s *Service) AuthenticateWithRecoveryCode(ctx context.Context, code string) (*AuthResult, error) {
	payload := s.mergeSessionToken(map[string]any{
		"code": code,
	})
	raw, err := s.post(ctx, "/_auth/mfa/recovery_code/authenticate", payload)
	if err != nil {
		return nil, err
	}
	return s.handleAuthResult(ctx, raw)
}

// ListRecoveryCodes returns the user's unused recovery codes.
func (s *Service) ListRecoveryCodes(ctx context.Context) ([]string, error) {
	raw, err := s.post(ctx, "/_auth/mfa/recovery_code/list", s.mergeSessionToken(map[string]any{}))
	if err != nil {
		return nil, err
	}
	return decodeRecoveryCodes(raw)
}

// RegenerateRecoveryCodes replaces the user's recovery codes and
// returns the new set.
func (s *Service) RegenerateRecoveryCodes(ctx context.Context) ([]string, error) {
	raw, err := s.post(ctx, "/_auth/mfa/recovery_code/regenerate", s.mergeSessionToken(map[string]any{}))
	if err != nil {
		return nil, err
	}
	return decodeRecoveryCodes(raw)
}

// AuthenticateWithBearerToken completes a pending login with a bearer
// token issued by a previous RequestBearerToken authentication.
func (s *Service) AuthenticateWithBearerToken(ctx context.Context, bearerToken string) (*AuthResult, error) {
	payload := s.mergeSessionToken(map[string]any{
		"bearer_token": bearerToken,
	})
	raw, err := s.post(ctx, "/_auth/mfa/bearer_token/authenticate", payload)
	if err != nil {
		return nil, err
	}
	return s.handleAuthResult(ctx, raw)
}

// RevokeAllBearerTokens invalidates every issued MFA bearer token.
func (s *Service) RevokeAllBearerTokens(ctx context.Context) error {
	_, err := s.post(ctx, "/_auth/mfa/bearer_token/revoke_all", s.mergeSessionToken(map[string]any{}))
	return err
}

// ListAuthenticators returns the user's enrolled authenticators.
func (s *Service) ListAuthenticators(ctx context.Context) ([]Authenticator, error) {
	raw, err := s.post(ctx, "/_auth/mfa/authenticator/list", s.mergeSessionToken(map[string]any{}))
	if err != nil {
		return nil, err
	}

	var result struct {
		Authenticators []Authenticator `json:"authenticators"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", skyerr.ErrFailedToDecode, err)
	}
	return result.Authenticators, nil
}

// DeleteAuthenticator removes one enrolled authenticator.
func (s *Service) DeleteAuthenticator(ctx context.Context, authenticatorID string) error {
	payload := s.mergeSessionToken(map[string]any{
		"authenticator_id": authenticatorID,
	})
	_, err := s.post(ctx, "/_auth/mfa/authenticator/delete", payload)
	return err
}

func applyAuthenticateOptions(payload map[string]any, opts *MFAAuthenticateOptions) {
	if opts != nil && opts.RequestBearerToken {
		payload["request_bearer_token"] = true
	}
}

func decodeRecoveryCodes(raw json.RawMessage) ([]string, error) {
	var result struct {
		RecoveryCodes []string `json:"recovery_codes"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", skyerr.ErrFailedToDecode, err)
	}
	return result.RecoveryCodes, nil
}
