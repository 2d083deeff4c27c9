package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Configuration keys and their environment bindings.
const (
	envKey                 = "env"
	baseURLKey             = "client.base_url"
	timeoutSecondsKey      = "client.timeout_seconds"
	sessionFileKey         = "client.session_file"
	languageKey            = "client.language"
	sandboxAddressKey      = "sandbox.address"
	sandboxSecretKey       = "sandbox.jwt_secret"
	accessTokenTTLMinsKey  = "sandbox.access_token_ttl_mins"
	refreshTokenTTLDaysKey = "sandbox.refresh_token_ttl_days"
)

// Config holds configuration for both binaries.
type Config struct {
	Env     string        `mapstructure:"env" validate:"required,oneof=dev prod test"`
	Client  ClientParams  `mapstructure:"client" validate:"required"`
	Sandbox SandboxParams `mapstructure:"sandbox" validate:"required"`
}

// ClientParams configure the API client and CLI.
type ClientParams struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"required,min=1,max=120"`
	SessionFile    string `mapstructure:"session_file"`
	Language       string `mapstructure:"language" validate:"omitempty,oneof=az en ru"`
}

// SandboxParams configure the local sandbox backend.
type SandboxParams struct {
	Address             string `mapstructure:"address" validate:"required"`
	JWTSecret           string `mapstructure:"jwt_secret" validate:"required,min=16"`
	AccessTokenTTLMins  int    `mapstructure:"access_token_ttl_mins" validate:"required,min=1,max=1440"`
	RefreshTokenTTLDays int    `mapstructure:"refresh_token_ttl_days" validate:"required,min=1,max=90"`
}

// Timeout returns the request timeout as a Duration.
func (c *ClientParams) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AccessTokenTTL returns the sandbox access token lifetime.
func (s *SandboxParams) AccessTokenTTL() time.Duration {
	return time.Duration(s.AccessTokenTTLMins) * time.Minute
}

// RefreshTokenTTL returns the sandbox refresh token lifetime.
func (s *SandboxParams) RefreshTokenTTL() time.Duration {
	return time.Duration(s.RefreshTokenTTLDays) * 24 * time.Hour
}

func envBindings() map[string]string {
	return map[string]string{
		envKey:                 "CASINO_ENV",
		baseURLKey:             "CASINO_BASE_URL",
		timeoutSecondsKey:      "CASINO_TIMEOUT_SECONDS",
		sessionFileKey:         "CASINO_SESSION_FILE",
		languageKey:            "CASINO_LANGUAGE",
		sandboxAddressKey:      "SANDBOX_ADDRESS",
		sandboxSecretKey:       "SANDBOX_JWT_SECRET",
		accessTokenTTLMinsKey:  "SANDBOX_ACCESS_TOKEN_TTL_MINS",
		refreshTokenTTLDaysKey: "SANDBOX_REFRESH_TOKEN_TTL_DAYS",
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".kazino55", "session.json")
}

// New loads configuration from an optional casino.yaml in the working
// directory, overridden by environment variables, and validates the result.
func New() (*Config, error) {
	v := viper.New()

	v.SetDefault(envKey, "dev")
	v.SetDefault(baseURLKey, "https://beta.kazino55.net/api/v1")
	v.SetDefault(timeoutSecondsKey, 30)
	v.SetDefault(sessionFileKey, defaultSessionFile())
	v.SetDefault(languageKey, "az")
	v.SetDefault(sandboxAddressKey, ":8080")
	v.SetDefault(sandboxSecretKey, "sandbox-only-secret-not-for-production")
	v.SetDefault(accessTokenTTLMinsKey, 15)
	v.SetDefault(refreshTokenTTLDaysKey, 7)

	v.SetConfigName("casino")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	for configKey, envVar := range envBindings() {
		if err := v.BindEnv(configKey, envVar); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", envVar, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// The config file is optional; defaults and env vars suffice.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
