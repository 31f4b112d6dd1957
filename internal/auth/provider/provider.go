package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth"
)

// Provider defines the contract every external auth provider must
// implement. Implementations return identity facts only and must not
// perform user creation, linking, or token issuance.
type Provider interface {
	// Name returns the provider identifier (e.g. "google", "github").
	Name() string

	// AuthorizationURL returns the provider's authorization redirect
	// URL carrying the caller-supplied CSRF state.
	AuthorizationURL(state string) string

	// ExchangeCode exchanges the authorization code for a provider
	// access token. Authorization codes are single-use: a failed
	// exchange is surfaced to the caller, never retried.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// FetchIdentity fetches the user's profile with the provider
	// access token and maps it to a normalized Identity.
	FetchIdentity(ctx context.Context, accessToken string) (*auth.Identity, error)
}

// Error is a provider communication failure. It carries the provider
// name and the operation that failed so callers can report upstream
// detail without string matching.
type Error struct {
	Provider string
	Op       string // "exchange_code" or "fetch_identity"
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s oauth %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// UnsupportedError is returned when a provider name is not registered.
type UnsupportedError struct {
	Name      string
	Supported []string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported oauth provider %q, supported: %s",
		e.Name, strings.Join(e.Supported, ", "))
}
