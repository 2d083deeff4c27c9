package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "https://beta.kazino55.net/api/v1", cfg.Client.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout())
	assert.Equal(t, "az", cfg.Client.Language)
	assert.NotEmpty(t, cfg.Client.SessionFile)
	assert.Equal(t, ":8080", cfg.Sandbox.Address)
	assert.Equal(t, 15*time.Minute, cfg.Sandbox.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.Sandbox.RefreshTokenTTL())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CASINO_ENV", "test")
	t.Setenv("CASINO_BASE_URL", "http://localhost:8080/api/v1")
	t.Setenv("CASINO_TIMEOUT_SECONDS", "5")
	t.Setenv("CASINO_LANGUAGE", "ru")
	t.Setenv("SANDBOX_ADDRESS", ":9999")
	t.Setenv("SANDBOX_ACCESS_TOKEN_TTL_MINS", "60")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.Client.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Client.Timeout())
	assert.Equal(t, "ru", cfg.Client.Language)
	assert.Equal(t, ":9999", cfg.Sandbox.Address)
	assert.Equal(t, time.Hour, cfg.Sandbox.AccessTokenTTL())
}

func TestValidationRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"bad env", "CASINO_ENV", "staging"},
		{"bad base url", "CASINO_BASE_URL", "not a url"},
		{"timeout too large", "CASINO_TIMEOUT_SECONDS", "500"},
		{"unknown language", "CASINO_LANGUAGE", "de"},
		{"jwt secret too short", "SANDBOX_JWT_SECRET", "short"},
		{"refresh ttl too long", "SANDBOX_REFRESH_TOKEN_TTL_DAYS", "365"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)
			_, err := New()
			assert.Error(t, err)
		})
	}
}
