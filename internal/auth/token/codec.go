// Package token encodes and decodes the signed, expiring tokens the
// API hands out: a short-lived access token and a long-lived refresh
// token, distinguished only by their kind claim and TTL. Tokens are
// fully stateless; nothing is tracked server-side.
package token

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Kind tags a token as access or refresh.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// ErrInvalid is returned by Decode for any token that fails
// verification: malformed structure, bad signature, wrong algorithm,
// or expiry. Token parsing sits on the untrusted boundary, so Decode
// never panics and never leaks parser detail to the caller.
var ErrInvalid = errors.New("invalid token")

// Claims is the decoded content of a token. Timestamps are
// second-granularity.
type Claims struct {
	Subject   string
	Kind      Kind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Pair is an access/refresh token pair sharing no server-side state.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

type jwtClaims struct {
	Kind string `json:"typ"`
	jwtv5.RegisteredClaims
}

// Codec signs and verifies tokens with a symmetric server secret.
type Codec struct {
	secret []byte
	method jwtv5.SigningMethod

	now func() time.Time
}

// NewCodec builds a codec for the given secret and HMAC algorithm
// name (HS256, HS384, HS512). A missing secret or unknown algorithm
// is a configuration error; callers treat it as startup-fatal.
func NewCodec(secret, algorithm string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	method := jwtv5.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwtv5.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token: signing algorithm %q is not symmetric", algorithm)
	}
	return &Codec{
		secret: []byte(secret),
		method: method,
		now:    time.Now,
	}, nil
}

// Issue encodes {subject, kind, iat=now, exp=now+ttl} signed with the
// server secret.
func (c *Codec) Issue(subject string, kind Kind, ttl time.Duration) (string, error) {
	now := c.now().UTC().Truncate(time.Second)
	claims := jwtClaims{
		Kind: string(kind),
		RegisteredClaims: jwtv5.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwtv5.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Decode verifies signature and expiry and returns the claims, or
// ErrInvalid. Expiry is inclusive: a token is already invalid at its
// exact expiry instant.
func (c *Codec) Decode(raw string) (*Claims, error) {
	var jc jwtClaims
	tok, err := jwtv5.ParseWithClaims(raw, &jc,
		func(*jwtv5.Token) (any, error) { return c.secret, nil },
		jwtv5.WithValidMethods([]string{c.method.Alg()}),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(c.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalid
	}
	if jc.Subject == "" {
		return nil, ErrInvalid
	}
	kind := Kind(jc.Kind)
	if kind != KindAccess && kind != KindRefresh {
		return nil, ErrInvalid
	}
	// jwt/v5 treats exp as valid while now is strictly before it, but
	// double-check the inclusive boundary against our own clock.
	exp := jc.ExpiresAt.Time
	if !c.now().Before(exp) {
		return nil, ErrInvalid
	}
	out := &Claims{
		Subject:   jc.Subject,
		Kind:      kind,
		ExpiresAt: exp,
	}
	if jc.IssuedAt != nil {
		out.IssuedAt = jc.IssuedAt.Time
	}
	return out, nil
}

// IsKind reports whether the token decodes cleanly and carries the
// expected kind. Decode failures are false, not errors.
func (c *Codec) IsKind(raw string, kind Kind) bool {
	claims, err := c.Decode(raw)
	return err == nil && claims.Kind == kind
}
