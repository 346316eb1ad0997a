package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, ":8080", cfg.HTTPAddress)
	require.Equal(t, 12*time.Hour, cfg.TokenTTL)
	require.Equal(t, 10, cfg.BcryptCost)
	require.NotEmpty(t, cfg.JWTSecret)
	require.NotEmpty(t, cfg.JWTIssuer)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("JWT_SECRET", "prod-secret")

	cfg := Load()
	require.Equal(t, ":9090", cfg.HTTPAddress)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, 12, cfg.BcryptCost)
	require.Equal(t, "prod-secret", cfg.JWTSecret)
}

func TestLoadIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg := Load()
	require.Equal(t, 12*time.Hour, cfg.TokenTTL)
	require.Equal(t, 10, cfg.BcryptCost)
}
