package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DatabaseURL:          "postgres://localhost/markethelper",
		JWTSecret:            "secret",
		TokenTTLHours:        720,
		ResetTokenTTLMinutes: 15,
	}
}

func TestValidate_RejectsMissingSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_RejectsMissingDatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""

	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsNonPositiveTTLs(t *testing.T) {
	cfg := validConfig()
	cfg.TokenTTLHours = 0
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.ResetTokenTTLMinutes = -1
	require.Error(t, cfg.Validate())
}

func TestValidate_AcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestLoad_Defaults(t *testing.T) {
	// No env set in tests: defaults must still produce sane TTLs
	cfg := Load()

	assert.Equal(t, 720, cfg.TokenTTLHours)
	assert.Equal(t, 15, cfg.ResetTokenTTLMinutes)
	assert.Equal(t, 587, cfg.SMTPPort)
}
