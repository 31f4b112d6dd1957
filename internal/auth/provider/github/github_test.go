package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/provider"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New("client-id", "client-secret", "http://localhost/oauth/github/callback", nil)
	require.NoError(t, err)
	return p
}

func TestNewRejectsMissingCredentials(t *testing.T) {
	_, err := New("", "secret", "http://localhost/cb", nil)
	require.Error(t, err)
}

func TestAuthorizationURL(t *testing.T) {
	p := newTestProvider(t)

	u := p.AuthorizationURL("csrf-state-value")
	assert.Contains(t, u, "github.com/login/oauth/authorize")
	assert.Contains(t, u, "state=csrf-state-value")
	assert.Contains(t, u, "allow_signup=true")
}

func TestFetchIdentityWithPublicEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer provider-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"id": 42,
			"login": "octo",
			"name": "Octo Cat",
			"email": "octo@example.com",
			"avatar_url": "https://img.example.com/octo.png"
		}`))
	}))
	defer srv.Close()

	p := newTestProvider(t)
	p.userURL = srv.URL

	identity, err := p.FetchIdentity(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "github", identity.Provider)
	assert.Equal(t, "42", identity.ExternalID)
	assert.Equal(t, "octo@example.com", identity.Email)
	assert.Equal(t, "Octo Cat", identity.DisplayName)
}

func TestFetchIdentityFallsBackToEmailsAPI(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id": 42, "login": "octo", "email": ""}`))
	})
	mux.HandleFunc("/emails", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"email": "old@example.com", "primary": false, "verified": true},
			{"email": "octo@example.com", "primary": true, "verified": true}
		]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestProvider(t)
	p.userURL = srv.URL + "/user"
	p.emailURL = srv.URL + "/emails"

	identity, err := p.FetchIdentity(context.Background(), "provider-token")
	require.NoError(t, err)
	assert.Equal(t, "octo@example.com", identity.Email)
	// Private display name falls back to the login.
	assert.Equal(t, "octo", identity.DisplayName)
}

func TestFetchIdentityNoVerifiedEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id": 42, "login": "octo"}`))
	})
	mux.HandleFunc("/emails", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"email": "octo@example.com", "primary": true, "verified": false}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestProvider(t)
	p.userURL = srv.URL + "/user"
	p.emailURL = srv.URL + "/emails"

	_, err := p.FetchIdentity(context.Background(), "provider-token")
	var provErr *provider.Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "fetch_identity", provErr.Op)
}
