// Package github implements the GitHub OAuth 2.0 provider adapter.
// Unlike Google, GitHub has no OIDC userinfo: profile data comes from
// the REST API, and some accounts keep their email private, requiring
// a second call to /user/emails.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/provider"
)

const (
	providerName = "github"

	userEndpoint  = "https://api.github.com/user"
	emailEndpoint = "https://api.github.com/user/emails"
)

// Provider implements provider.Provider for GitHub OAuth.
type Provider struct {
	cfg      *oauth2.Config
	userURL  string
	emailURL string
	http     *http.Client
}

// New builds a GitHub provider, failing on missing credentials.
func New(clientID, clientSecret, redirectURL string, scopes []string) (*Provider, error) {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("github oauth config missing required fields")
	}
	if len(scopes) == 0 {
		scopes = []string{"read:user", "user:email"}
	}
	return &Provider{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     oauthgithub.Endpoint,
			Scopes:       scopes,
		},
		userURL:  userEndpoint,
		emailURL: emailEndpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (p *Provider) Name() string { return providerName }

// AuthorizationURL builds the redirect URL with the CSRF state.
// GitHub grants are long-lived already; there is no offline mode.
func (p *Provider) AuthorizationURL(state string) string {
	return p.cfg.AuthCodeURL(state, oauth2.SetAuthURLParam("allow_signup", "true"))
}

// ExchangeCode trades the authorization code for an access token.
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
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type emailInfo struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// FetchIdentity fetches the user's profile, falling back to the
// emails API when the profile email is private.
func (p *Provider) FetchIdentity(ctx context.Context, accessToken string) (*auth.Identity, error) {
	var info userInfo
	if err := p.get(ctx, p.userURL, accessToken, &info); err != nil {
		return nil, err
	}
	if info.ID == 0 {
		return nil, &provider.Error{
			Provider: providerName,
			Op:       "fetch_identity",
			Err:      errors.New("user response missing required field"),
		}
	}

	email := info.Email
	if email == "" {
		var err error
		email, err = p.primaryEmail(ctx, accessToken)
		if err != nil {
			return nil, err
		}
	}

	display := info.Name
	if display == "" {
		display = info.Login
	}

	return &auth.Identity{
		Provider:    providerName,
		ExternalID:  strconv.FormatInt(info.ID, 10),
		Email:       email,
		DisplayName: display,
		AvatarURL:   info.AvatarURL,
	}, nil
}

func (p *Provider) primaryEmail(ctx context.Context, accessToken string) (string, error) {
	var emails []emailInfo
	if err := p.get(ctx, p.emailURL, accessToken, &emails); err != nil {
		return "", err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, nil
		}
	}
	return "", &provider.Error{
		Provider: providerName,
		Op:       "fetch_identity",
		Err:      errors.New("no verified email on account"),
	}
}

func (p *Provider) get(ctx context.Context, url, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &provider.Error{Provider: providerName, Op: "fetch_identity", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return &provider.Error{Provider: providerName, Op: "fetch_identity", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &provider.Error{
			Provider: providerName,
			Op:       "fetch_identity",
			Err:      fmt.Errorf("github api http %d", resp.StatusCode),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &provider.Error{Provider: providerName, Op: "fetch_identity", Err: err}
	}
	return nil
}
