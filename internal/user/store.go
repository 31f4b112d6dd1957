package user

import "context"

// Store is the persistence contract the auth subsystem depends on.
// Implementations must map uniqueness violations to ErrDuplicate and
// empty lookups to ErrNotFound.
type Store interface {
	ByID(ctx context.Context, id string) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	ByExternalID(ctx context.Context, provider, externalID string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, u User) (*User, error)
	// Delete removes the account; owned workout records cascade at
	// the database level.
	Delete(ctx context.Context, id string) error
}
