// Package service orchestrates the login lifecycle: login-initiate,
// OAuth callback, and refresh. The whole flow is stateless and
// restartable from login-initiate on any failure; there is no
// intermediate persisted state.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/provider"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/resolver"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/revocation"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/state"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/token"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/logger"
)

var (
	// ErrInvalidRefreshToken covers decode failure, wrong kind, and
	// deny-listed refresh tokens alike.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrUnauthenticated is returned for any access token that does
	// not verify.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Service composes the provider registry, token codec, and identity
// resolver into the end-to-end auth flows.
type Service struct {
	providers *provider.Registry
	codec     *token.Codec
	resolver  resolver.Resolver
	revoked   revocation.List // nil disables the deny-list

	accessTTL  time.Duration
	refreshTTL time.Duration

	log *zap.Logger
}

func New(
	providers *provider.Registry,
	codec *token.Codec,
	res resolver.Resolver,
	revoked revocation.List,
	accessTTL, refreshTTL time.Duration,
) *Service {
	return &Service{
		providers:  providers,
		codec:      codec,
		resolver:   res,
		revoked:    revoked,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        logger.Named("auth"),
	}
}

// InitiateLogin validates the provider name, generates a CSRF state,
// and returns the authorization URL. The caller must persist the
// state client-side and enforce it on the callback.
func (s *Service) InitiateLogin(name string) (authURL, csrfState string, err error) {
	p, err := s.providers.Resolve(name)
	if err != nil {
		return "", "", err
	}
	csrfState, err = state.Generate()
	if err != nil {
		return "", "", err
	}
	return p.AuthorizationURL(csrfState), csrfState, nil
}

// HandleCallback runs the callback leg: exchange the code, fetch the
// identity, reconcile it to a local user, and mint a token pair.
// Failures at the exchange or fetch stage abort the flow before any
// user is created.
func (s *Service) HandleCallback(ctx context.Context, name, code string) (*token.Pair, int, error) {
	p, err := s.providers.Resolve(name)
	if err != nil {
		return nil, 0, err
	}

	providerToken, err := p.ExchangeCode(ctx, code)
	if err != nil {
		return nil, 0, err
	}

	identity, err := p.FetchIdentity(ctx, providerToken)
	if err != nil {
		return nil, 0, err
	}

	u, err := s.resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, 0, err
	}

	s.log.Info("oauth login",
		zap.String("provider", identity.Provider),
		zap.String("user_id", u.ID),
	)
	return s.IssueTokens(u.ID)
}

// Refresh validates a refresh token and mints a fresh pair. The
// consumed token is deny-listed for its remaining lifetime when a
// deny-list is configured; without one, old refresh tokens stay valid
// until natural expiry.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*token.Pair, int, error) {
	claims, err := s.codec.Decode(refreshToken)
	if err != nil || claims.Kind != token.KindRefresh {
		return nil, 0, ErrInvalidRefreshToken
	}

	if s.revoked != nil {
		revoked, err := s.revoked.Contains(ctx, refreshToken)
		if err != nil {
			// Deny-list outage fails open: the stateless design is
			// the baseline, the list is hardening on top.
			s.log.Warn("deny-list lookup failed", zap.Error(err))
		} else if revoked {
			return nil, 0, ErrInvalidRefreshToken
		}
	}

	pair, expiresIn, err := s.IssueTokens(claims.Subject)
	if err != nil {
		return nil, 0, err
	}

	if s.revoked != nil {
		if err := s.revoked.Add(ctx, refreshToken, time.Until(claims.ExpiresAt)); err != nil {
			s.log.Warn("deny-list add failed", zap.Error(err))
		}
	}
	return pair, expiresIn, nil
}

// Revoke deny-lists a refresh token (logout). Best-effort: with no
// deny-list configured it is a no-op.
func (s *Service) Revoke(ctx context.Context, refreshToken string) {
	if s.revoked == nil {
		return
	}
	claims, err := s.codec.Decode(refreshToken)
	if err != nil || claims.Kind != token.KindRefresh {
		return
	}
	if err := s.revoked.Add(ctx, refreshToken, time.Until(claims.ExpiresAt)); err != nil {
		s.log.Warn("deny-list add failed", zap.Error(err))
	}
}

// CurrentSubject verifies an access token and returns its subject.
func (s *Service) CurrentSubject(accessToken string) (string, error) {
	claims, err := s.codec.Decode(accessToken)
	if err != nil || claims.Kind != token.KindAccess {
		return "", ErrUnauthenticated
	}
	return claims.Subject, nil
}

// IssueTokens mints a token pair for a user and returns the access
// TTL in seconds.
func (s *Service) IssueTokens(userID string) (*token.Pair, int, error) {
	access, err := s.codec.Issue(userID, token.KindAccess, s.accessTTL)
	if err != nil {
		return nil, 0, err
	}
	refresh, err := s.codec.Issue(userID, token.KindRefresh, s.refreshTTL)
	if err != nil {
		return nil, 0, err
	}
	return &token.Pair{AccessToken: access, RefreshToken: refresh},
		int(s.accessTTL.Seconds()), nil
}

// RefreshTTL exposes the configured refresh lifetime for cookie
// max-age purposes.
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }
