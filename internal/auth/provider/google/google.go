// Package google implements the Google OAuth 2.0 provider adapter.
// Profile data comes from the OpenID userinfo endpoint using the
// access token obtained from the code exchange.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/provider"
)

const (
	providerName = "google"

	userInfoEndpoint = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// Provider implements provider.Provider for Google Sign-In.
type Provider struct {
	cfg         *oauth2.Config
	userInfoURL string
	http        *http.Client
}

// New builds a Google provider. Missing credentials are a
// configuration error surfaced at startup, not per request.
func New(clientID, clientSecret, redirectURL string, scopes []string) (*Provider, error) {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("google oauth config missing required fields")
	}
	if len(scopes) == 0 {
		scopes = []string{"openid", "email", "profile"}
	}
	return &Provider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     oauthgoogle.Endpoint,
			Scopes:       scopes,
		},
		userInfoURL: userInfoEndpoint,
		http:        &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (p *Provider) Name() string { return providerName }

// AuthorizationURL builds the redirect URL with the CSRF state. The
// offline access type plus forced consent makes Google hand back a
// refresh-capable grant on every login, not just the first.
func (p *Provider) AuthorizationURL(state string) string {
	return p.cfg.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// ExchangeCode trades the single-use authorization code for an access
// token. Failures are surfaced, never retried.
func (p *Provider) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.http)
	tok, err := p.cfg.Exchange(ctx, code)
	if err != nil {
		return "", &provider.Error{Provider: providerName, Op: "exchange_code", Err: err}
	}
	if tok.AccessToken == "" {
		return "", &provider.Error{
			Provider: providerName,
			Op:       "exchange_code",
			Err:      errors.New("no access_token in response"),
		}
	}
	return tok.AccessToken, nil
}

type userInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// FetchIdentity fetches the user's profile from the userinfo endpoint
// and maps it to a normalized Identity. Sub and email are required.
func (p *Provider) FetchIdentity(ctx context.Context, accessToken string) (*auth.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, &provider.Error{Provider: providerName, Op: "fetch_identity", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, &provider.Error{Provider: providerName, Op: "fetch_identity", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &provider.Error{
			Provider: providerName,
			Op:       "fetch_identity",
			Err:      fmt.Errorf("userinfo http %d: %s", resp.StatusCode, body),
		}
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, &provider.Error{Provider: providerName, Op: "fetch_identity", Err: err}
	}
	if info.Sub == "" || info.Email == "" {
		return nil, &provider.Error{
			Provider: providerName,
			Op:       "fetch_identity",
			Err:      errors.New("userinfo response missing required field"),
		}
	}

	return &auth.Identity{
		Provider:    providerName,
		ExternalID:  info.Sub,
		Email:       info.Email,
		DisplayName: info.Name,
		AvatarURL:   info.Picture,
	}, nil
}
