package resolver

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/logger"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/user"
)

// StoreResolver reconciles identities against the user store:
// external-id lookup first, then email linking, then creation.
type StoreResolver struct {
	users user.Store
	log   *zap.Logger
}

func New(users user.Store) *StoreResolver {
	return &StoreResolver{
		users: users,
		log:   logger.Named("resolver"),
	}
}

// Resolve finds or creates the local user for a verified identity.
//
// An existing user matched by (provider, external id) is returned
// unchanged: logins do not sync profile fields. A user matched only
// by email is linked to the new identity's account as-is
// (first-provider-wins); the event is logged so the policy is
// auditable, since the upstream provider may not guarantee verified
// emails.
func (r *StoreResolver) Resolve(ctx context.Context, identity *auth.Identity) (*user.User, error) {
	if identity == nil {
		return nil, errors.New("resolver: identity is nil")
	}

	u, err := r.users.ByExternalID(ctx, identity.Provider, identity.ExternalID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	u, err = r.users.ByEmail(ctx, identity.Email)
	if err == nil {
		r.log.Warn("linking oauth identity to existing account by email",
			zap.String("email", identity.Email),
			zap.String("existing_provider", u.Provider),
			zap.String("new_provider", identity.Provider),
		)
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	username, err := UniqueUsername(ctx, r.users, usernameBase(identity))
	if err != nil {
		return nil, err
	}

	created, err := r.users.Create(ctx, user.User{
		Email:       identity.Email,
		Username:    username,
		DisplayName: identity.DisplayName,
		AvatarURL:   identity.AvatarURL,
		Provider:    identity.Provider,
		ExternalID:  identity.ExternalID,
		Active:      true,
	})
	if errors.Is(err, user.ErrDuplicate) {
		// Another callback won the creation race; the unique
		// constraints are the backstop. Retry as a lookup.
		return r.lookupAfterRace(ctx, identity)
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *StoreResolver) lookupAfterRace(ctx context.Context, identity *auth.Identity) (*user.User, error) {
	u, err := r.users.ByExternalID(ctx, identity.Provider, identity.ExternalID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}
	return r.users.ByEmail(ctx, identity.Email)
}

// usernameBase picks the seed for username generation: the display
// name without spaces, or the email local part.
func usernameBase(identity *auth.Identity) string {
	if identity.DisplayName != "" {
		return strings.ToLower(strings.ReplaceAll(identity.DisplayName, " ", ""))
	}
	base, _, _ := strings.Cut(identity.Email, "@")
	return base
}
