package resolver

import (
	"context"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/user"
)

// Resolver determines which local user an external identity belongs
// to. It is the only place where identity-to-user mapping logic
// lives.
type Resolver interface {
	Resolve(ctx context.Context, identity *auth.Identity) (*user.User, error)
}
