package credentials

import (
	"context"
	"errors"
	"strings"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/resolver"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/user"
)

var (
	// ErrInvalidCredentials deliberately hides whether the account
	// exists, which provider it uses, or which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("account already exists")
)

// Service handles email/password registration and login for
// local-provider accounts.
type Service struct {
	users user.Store
}

func NewService(users user.Store) *Service {
	return &Service{users: users}
}

// Register creates a local-password user. The email must be unused
// across all providers.
func (s *Service) Register(ctx context.Context, email, password string) (*user.User, error) {
	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	base, _, _ := strings.Cut(email, "@")
	username, err := resolver.UniqueUsername(ctx, s.users, base)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, user.User{
		Email:        email,
		Username:     username,
		Provider:     user.ProviderLocal,
		PasswordHash: hash,
		Active:       true,
	})
	if errors.Is(err, user.ErrDuplicate) {
		return nil, ErrAlreadyRegistered
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Authenticate verifies an email/password pair and returns the user.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Provider != user.ProviderLocal || u.PasswordHash == "" || !u.Active {
		return nil, ErrInvalidCredentials
	}
	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
