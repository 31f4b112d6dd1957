// Package state generates and checks the opaque anti-forgery value
// round-tripped through the OAuth redirect. The value lives in a
// short-lived client-side cookie; the server stores nothing.
package state

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

const entropyBytes = 32 // 256 bits

// Generate returns a cryptographically random URL-safe state token.
func Generate() (string, error) {
	b := make([]byte, entropyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("state: failed to generate: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Validate compares the state returned by the client against the one
// this server issued. Either side being absent fails; the comparison
// is constant-time.
func Validate(received, expected string) bool {
	if received == "" || expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(received), []byte(expected)) == 1
}
