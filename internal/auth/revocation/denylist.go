// Package revocation is a short-lived deny-list for refresh tokens.
// Tokens stay stateless; the list only closes the rotation gap where
// a consumed (or logged-out) refresh token would otherwise remain
// valid until natural expiry. Entries live exactly as long as the
// token they shadow.
package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// List records consumed refresh tokens until their natural expiry.
type List interface {
	// Add deny-lists a token for the given remaining lifetime.
	Add(ctx context.Context, token string, ttl time.Duration) error
	// Contains reports whether a token has been deny-listed.
	Contains(ctx context.Context, token string) (bool, error)
}

// digest keys entries by token hash so the store never holds usable
// credentials.
func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
