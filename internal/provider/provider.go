// Package provider is the gateway to the external bank-data provider.
// It drives the link protocol: create a link session, exchange the
// user-approved public token for a durable access grant, and detect
// sandbox grants. It holds no durable state beyond the single active
// link session per user.
package provider

import (
	"errors"
	"time"
)

var (
	// ErrProviderUnavailable means link-session creation failed.
	// Retryable; already-synced data is unaffected.
	ErrProviderUnavailable = errors.New("bank-link provider unavailable")

	// ErrExchangeFailed means the public token was invalid, expired,
	// or already consumed. The user must restart linking.
	ErrExchangeFailed = errors.New("public token exchange failed")
)

// LinkSession authorizes a single account-linking attempt. It is
// consumed exactly once by a successful token exchange.
type LinkSession struct {
	SessionToken string
	CreatedAt    time.Time
	Consumed     bool
}

// AccessGrant is the durable credential returned by a successful
// exchange. It never leaves the gateway/coordinator boundary.
type AccessGrant struct {
	ProviderAccessID string
	ItemID           string
	Sandbox          bool
}
