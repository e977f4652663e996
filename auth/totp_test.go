package auth_test

import (
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/skygeario/skygear-go/auth"
)

func TestGenerateTOTPCode(t *testing.T) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Skygear",
		AccountName: "a@b.com",
	})
	if err != nil {
		t.Fatalf("totp.Generate() error = %v", err)
	}

	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	code, err := auth.GenerateTOTPCode(key.URL(), at)
	if err != nil {
		t.Fatalf("GenerateTOTPCode() error = %v", err)
	}

	valid, err := totp.ValidateCustom(code, key.Secret(), at, totp.ValidateOpts{
		Period:    30,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		t.Fatalf("ValidateCustom() error = %v", err)
	}
	if !valid {
		t.Errorf("code %q did not validate against its own secret", code)
	}
}

func TestGenerateTOTPCodeInvalidURI(t *testing.T) {
	if _, err := auth.GenerateTOTPCode("://not-a-uri", time.Now()); err == nil {
		t.Errorf("GenerateTOTPCode() error = nil, want invalid URI failure")
	}
}
