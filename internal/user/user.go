// Package user holds the local user entity and its persistence
// contract. Users arrive either through an OAuth callback or through
// email/password registration; exactly one of {password hash,
// external id} is meaningful depending on the provider kind.
package user

import (
	"errors"
	"time"
)

// ProviderLocal marks users created through email/password
// registration. OAuth users carry the provider name instead.
const ProviderLocal = "local"

// User is the persistent account entity.
type User struct {
	ID          string
	Email       string // unique
	Username    string // unique, human-chosen or generated
	DisplayName string
	AvatarURL   string

	Provider     string // ProviderLocal or an OAuth provider name
	ExternalID   string // set iff Provider != ProviderLocal
	PasswordHash string // set iff Provider == ProviderLocal

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOAuth reports whether the account was created via an OAuth
// provider.
func (u *User) IsOAuth() bool { return u.Provider != ProviderLocal }

var (
	// ErrNotFound is returned by lookups that match no user.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate is returned by Create when a uniqueness
	// constraint (email, username, provider+external id) fires.
	// Callers racing on creation treat it as "lost the race" and
	// retry as a lookup.
	ErrDuplicate = errors.New("user already exists")
)
