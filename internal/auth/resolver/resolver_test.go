package resolver

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/user"
)

// fakeStore is an in-memory user.Store mirroring the uniqueness
// behavior of the postgres implementation.
type fakeStore struct {
	users   map[string]*user.User // by id
	creates int

	failCreateOnce bool // simulate losing a creation race
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*user.User{}}
}

func (s *fakeStore) add(u user.User) *user.User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.ID] = &u
	return &u
}

func (s *fakeStore) ByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, user.ErrNotFound
}

func (s *fakeStore) ByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *fakeStore) ByExternalID(_ context.Context, provider, externalID string) (*user.User, error) {
	for _, u := range s.users {
		if u.Provider == provider && u.ExternalID == externalID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *fakeStore) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) Create(_ context.Context, u user.User) (*user.User, error) {
	if s.failCreateOnce {
		s.failCreateOnce = false
		return nil, user.ErrDuplicate
	}
	for _, existing := range s.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return nil, user.ErrDuplicate
		}
	}
	s.creates++
	return s.add(u), nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func googleIdentity() *auth.Identity {
	return &auth.Identity{
		Provider:    "google",
		ExternalID:  "sub-1",
		Email:       "jo@example.com",
		DisplayName: "Jo Doe",
		AvatarURL:   "https://img.example.com/jo.png",
	}
}

func TestResolveReturnsExistingByExternalID(t *testing.T) {
	store := newFakeStore()
	existing := store.add(user.User{
		Email:      "jo@example.com",
		Username:   "jodoe",
		Provider:   "google",
		ExternalID: "sub-1",
		Active:     true,
	})

	r := New(store)
	u, err := r.Resolve(context.Background(), googleIdentity())
	require.NoError(t, err)
	assert.Equal(t, existing.ID, u.ID)
	assert.Zero(t, store.creates, "existing user must not trigger a create")
}

func TestResolveLinksByEmail(t *testing.T) {
	store := newFakeStore()
	existing := store.add(user.User{
		Email:    "jo@example.com",
		Username: "jodoe",
		Provider: user.ProviderLocal,
		Active:   true,
	})

	r := New(store)
	u, err := r.Resolve(context.Background(), googleIdentity())
	require.NoError(t, err)
	assert.Equal(t, existing.ID, u.ID)
	// First-provider-wins: the stored provider is untouched.
	assert.Equal(t, user.ProviderLocal, u.Provider)
	assert.Zero(t, store.creates)
}

func TestResolveCreatesNewUser(t *testing.T) {
	store := newFakeStore()

	r := New(store)
	u, err := r.Resolve(context.Background(), googleIdentity())
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "jo@example.com", u.Email)
	assert.Equal(t, "jodoe", u.Username)
	assert.Equal(t, "google", u.Provider)
	assert.Equal(t, "sub-1", u.ExternalID)
	assert.True(t, u.Active)
	assert.Equal(t, 1, store.creates)
}

func TestResolveUsernameFallsBackToEmailLocalPart(t *testing.T) {
	store := newFakeStore()
	identity := googleIdentity()
	identity.DisplayName = ""

	r := New(store)
	u, err := r.Resolve(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, "jo", u.Username)
}

func TestResolveRetriesAfterCreationRace(t *testing.T) {
	store := newFakeStore()
	store.failCreateOnce = true
	// The "winner" of the race is already persisted.
	winner := store.add(user.User{
		Email:      "jo@example.com",
		Username:   "jodoe",
		Provider:   "google",
		ExternalID: "sub-1",
		Active:     true,
	})

	r := New(store)
	u, err := r.Resolve(context.Background(), googleIdentity())
	require.NoError(t, err)
	assert.Equal(t, winner.ID, u.ID)
}

func TestResolveNilIdentity(t *testing.T) {
	r := New(newFakeStore())
	_, err := r.Resolve(context.Background(), nil)
	require.Error(t, err)
}

func TestResolveIsDeterministicPerIdentity(t *testing.T) {
	store := newFakeStore()
	r := New(store)

	first, err := r.Resolve(context.Background(), googleIdentity())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Resolve(context.Background(), googleIdentity())
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID, "iteration %d", i)
	}
	assert.Equal(t, 1, store.creates)
}
