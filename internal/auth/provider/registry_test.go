package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth"
)

type stubProvider struct {
	name string
}

func (s *stubProvider) Name() string                        { return s.name }
func (s *stubProvider) AuthorizationURL(state string) string { return "https://example.com?state=" + state }
func (s *stubProvider) ExchangeCode(context.Context, string) (string, error) {
	return "token", nil
}
func (s *stubProvider) FetchIdentity(context.Context, string) (*auth.Identity, error) {
	return &auth.Identity{Provider: s.name}, nil
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register("Google", func() (Provider, error) {
		return &stubProvider{name: "google"}, nil
	})

	for _, name := range []string{"google", "GOOGLE", "Google"} {
		p, err := r.Resolve(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, "google", p.Name())
	}
}

func TestResolveReturnsFreshInstances(t *testing.T) {
	r := NewRegistry()
	r.Register("google", func() (Provider, error) {
		return &stubProvider{name: "google"}, nil
	})

	a, err := r.Resolve("google")
	require.NoError(t, err)
	b, err := r.Resolve("google")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestResolveUnknownListsSupported(t *testing.T) {
	r := NewRegistry()
	r.Register("google", func() (Provider, error) { return &stubProvider{name: "google"}, nil })
	r.Register("github", func() (Provider, error) { return &stubProvider{name: "github"}, nil })

	_, err := r.Resolve("facebook")
	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "facebook", unsupported.Name)
	assert.Equal(t, []string{"google", "github"}, unsupported.Supported)
	assert.Contains(t, unsupported.Error(), "facebook")
	assert.Contains(t, unsupported.Error(), "google, github")
}

func TestSupportedKeepsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("github", func() (Provider, error) { return &stubProvider{name: "github"}, nil })
	r.Register("google", func() (Provider, error) { return &stubProvider{name: "google"}, nil })

	assert.Equal(t, []string{"github", "google"}, r.Supported())
}
