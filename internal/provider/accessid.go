package provider

import (
	"fmt"
	"strings"
)

// Provider access IDs carry their environment as a namespace marker:
// "access-sandbox-b4f1c2..." or "access-production-9d2e...".
const accessIDPrefix = "access"

// FormatAccessID builds an access ID like "access-sandbox-<token>".
func FormatAccessID(environment, token string) string {
	return strings.Join([]string{accessIDPrefix, environment, token}, "-")
}

// ParseAccessID splits an access ID into its environment namespace and
// opaque token.
func ParseAccessID(id string) (environment, token string, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 || parts[0] != accessIDPrefix {
		return "", "", fmt.Errorf("invalid access ID format: %q", id)
	}
	if parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("invalid access ID format: %q", id)
	}
	return parts[1], parts[2], nil
}

// IsSandboxAccessID reports whether the access ID lives in the
// provider's sandbox namespace. Malformed IDs are not sandbox.
func IsSandboxAccessID(id string) bool {
	env, _, err := ParseAccessID(id)
	return err == nil && env == "sandbox"
}
