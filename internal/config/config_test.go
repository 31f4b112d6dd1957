package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		JWTSecret:       "secret",
		DatabaseDSN:     "postgres://localhost/app",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("SECURE_COOKIES", "true")
	t.Setenv("GOOGLE_SCOPES", "openid, email")

	cfg := Load()
	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, []string{"openid", "email"}, cfg.Google.Scopes)
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.DatabaseDSN = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.AccessTokenTTL = 0
	assert.Error(t, cfg.Validate())
}

func TestProviderConfigured(t *testing.T) {
	assert.False(t, ProviderConfig{}.Configured())
	assert.True(t, ProviderConfig{ClientID: "id"}.Configured())
}
