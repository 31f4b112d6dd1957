package resolver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	maxUsernameLen = 50
	maxNumbered    = 9999
)

// UsernameChecker is the slice of the user store that username
// generation needs.
type UsernameChecker interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// UniqueUsername derives an unused username from base: sanitize to
// alphanumeric and underscore, truncate to the length limit, then try
// numbered suffixes up to a bound before falling back to a random
// suffix. The bounded-retry-then-random pattern guarantees
// termination even under adversarial contention.
func UniqueUsername(ctx context.Context, store UsernameChecker, base string) (string, error) {
	clean := sanitize(base)
	if clean == "" {
		clean = "user"
	}
	if len(clean) > maxUsernameLen {
		clean = clean[:maxUsernameLen]
	}

	taken, err := store.UsernameExists(ctx, clean)
	if err != nil {
		return "", err
	}
	if !taken {
		return clean, nil
	}

	for i := 1; i <= maxNumbered; i++ {
		candidate := fmt.Sprintf("%s%d", clean, i)
		if len(candidate) > maxUsernameLen {
			candidate = candidate[:maxUsernameLen]
		}
		taken, err := store.UsernameExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("resolver: username suffix: %w", err)
	}
	if len(clean) > 41 {
		clean = clean[:41]
	}
	return clean + "_" + hex.EncodeToString(suffix), nil
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
