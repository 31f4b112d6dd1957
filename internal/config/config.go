package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// ProviderConfig carries the OAuth client settings for one provider.
// A provider with no client id is treated as not configured and is
// simply not registered.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

func (p ProviderConfig) Configured() bool {
	return p.ClientID != ""
}

type Config struct {
	AppPort string
	Env     string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string

	FrontendURL   string
	SecureCookies bool

	JWTSecret    string
	JWTAlgorithm string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	Google ProviderConfig
	GitHub ProviderConfig
}

func Load() Config {
	return Config{
		AppPort: getenv("APP_PORT", "8080"),
		Env:     getenv("APP_ENV", "dev"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		FrontendURL:   os.Getenv("FRONTEND_URL"),
		SecureCookies: getbool("SECURE_COOKIES", false),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTAlgorithm: getenv("JWT_ALGORITHM", "HS256"),

		AccessTokenTTL:  getduration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getduration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		Google: ProviderConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			Scopes:       getlist("GOOGLE_SCOPES"),
		},
		GitHub: ProviderConfig{
			ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
			ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GITHUB_REDIRECT_URL"),
			Scopes:       getlist("GITHUB_SCOPES"),
		},
	}
}

// Validate checks the settings the server cannot run without. Provider
// credentials are intentionally not required here: a deployment may
// run with password login only.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.DatabaseDSN == "" {
		return errors.New("config: DATABASE_DSN is required")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("config: token TTLs must be positive")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// getlist splits a comma-separated env var; empty means "use the
// provider's defaults".
func getlist(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
