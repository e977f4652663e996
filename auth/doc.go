// Package auth exposes the identity service's domain operations as
// calls through the container's request pipeline: credential login and
// signup, session management, login-ID and OAuth identity linking, and
// the multi-factor authentication flows.
//
// Every login-style entry point returns an *AuthResult. The result is
// either complete (StateAuthenticated, with the access token already
// installed on the container) or pending (StatePendingMFA, with a
// challenge describing the second factors still required):
//
//	result, err := authService.LoginWithEmail(ctx, "a@b.com", "pw")
//	if err != nil {
//	    return err
//	}
//	if result.State == auth.StatePendingMFA {
//	    result, err = authService.AuthenticateWithTOTP(ctx, otpCode, nil)
//	}
//
// While an attempt is pending, the service holds the ephemeral
// authentication session token and threads it into every MFA-step
// payload automatically. One Service instance tracks one attempt at a
// time; hosts running concurrent login attempts use one Service per
// attempt.
package auth
