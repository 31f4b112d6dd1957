package credentials

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/user"
)

type memStore struct {
	users map[string]*user.User
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*user.User{}}
}

func (s *memStore) ByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (s *memStore) ByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *memStore) ByExternalID(_ context.Context, provider, externalID string) (*user.User, error) {
	for _, u := range s.users {
		if u.Provider == provider && u.ExternalID == externalID {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *memStore) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) Create(_ context.Context, u user.User) (*user.User, error) {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return nil, user.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	s.users[u.ID] = &u
	return &u, nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func TestRegisterCreatesLocalUser(t *testing.T) {
	svc := NewService(newMemStore())

	u, err := svc.Register(context.Background(), "jo@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", u.Email)
	assert.Equal(t, "jo", u.Username)
	assert.Equal(t, user.ProviderLocal, u.Provider)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "s3cretpass", u.PasswordHash)
	assert.True(t, u.Active)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewService(newMemStore())

	_, err := svc.Register(context.Background(), "jo@example.com", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(newMemStore())

	_, err := svc.Register(context.Background(), "jo@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "jo@example.com", "otherpass1")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestAuthenticate(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	registered, err := svc.Register(context.Background(), "jo@example.com", "s3cretpass")
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), "jo@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
}

func TestAuthenticateFailuresAreUniform(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	_, err := svc.Register(context.Background(), "jo@example.com", "s3cretpass")
	require.NoError(t, err)

	// Wrong password and unknown account fail identically.
	_, err = svc.Authenticate(context.Background(), "jo@example.com", "wrongpass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsOAuthAccounts(t *testing.T) {
	store := newMemStore()
	store.Create(context.Background(), user.User{
		Email:      "jo@example.com",
		Username:   "jo",
		Provider:   "google",
		ExternalID: "sub-1",
		Active:     true,
	})
	svc := NewService(store)

	_, err := svc.Authenticate(context.Background(), "jo@example.com", "anything1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsInactiveAccounts(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)

	u, err := svc.Register(context.Background(), "jo@example.com", "s3cretpass")
	require.NoError(t, err)
	store.users[u.ID].Active = false

	_, err = svc.Authenticate(context.Background(), "jo@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
