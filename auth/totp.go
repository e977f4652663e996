package auth

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// GenerateTOTPCode derives the six-digit code for an enrolled TOTP
// authenticator from the otpauth:// URI returned by CreateNewTOTP.
// Intended for headless hosts (CLI tools, test rigs) that hold the
// secret themselves instead of handing it to an authenticator app.
func GenerateTOTPCode(otpauthURI string, at time.Time) (string, error) {
	key, err := otp.NewKeyFromURL(otpauthURI)
	if err != nil {
		return "", fmt.Errorf("invalid otpauth URI: %w", err)
	}
	code, err := totp.GenerateCode(key.Secret(), at)
	if err != nil {
		return "", fmt.Errorf("failed to generate TOTP code: %w", err)
	}
	return code, nil
}
