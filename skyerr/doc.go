// Package skyerr decodes the uniform response envelope returned by the
// Skygear identity service and models its error taxonomy.
//
// Every endpoint responds with a JSON object carrying exactly one of the
// keys "result" or "error":
//
//	{"result": {"user": {...}, "access_token": "..."}}
//	{"error": {"name": "AuthenticationFailed", "reason": "InvalidCredentials", ...}}
//
// Decode returns the raw result value on success, or a *skyerr.Error
// decoded from the error member. An envelope with neither member is
// itself an error condition (ErrMalformedEnvelope).
//
// Well-known error kinds map onto package sentinels so callers can use
// errors.Is:
//
//	_, err := skyerr.Decode(body)
//	if errors.Is(err, skyerr.ErrNotAuthenticated) {
//	    // prompt for login
//	}
package skyerr
