package container

import (
	"fmt"
	"regexp"
)

// Gear subdomain labels.
const (
	GearAuth  = "accounts"
	GearAsset = "assets"
)

var schemePattern = regexp.MustCompile(`^(https?://)`)

// GearEndpoint derives a gear endpoint from the base endpoint by
// inserting "<gear>." between the scheme prefix and the host:
//
//	GearEndpoint("https://myapp.skygear.dev", "accounts")
//	// "https://accounts.myapp.skygear.dev"
//
// Derivation is deterministic. A base endpoint the substitution leaves
// unchanged carries no scheme prefix and is invalid.
func GearEndpoint(base, gear string) (string, error) {
	derived := schemePattern.ReplaceAllString(base, "${1}"+gear+".")
	if derived == base {
		return "", fmt.Errorf("%w: %q", ErrInvalidEndpoint, base)
	}
	return derived, nil
}
