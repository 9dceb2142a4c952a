package config_test

import (
	"testing"

	"github.com/jrsteele09/go-cognito-bridge/identity"
	"github.com/jrsteele09/go-cognito-bridge/internal/config"
	apperrors "github.com/jrsteele09/go-cognito-bridge/internal/errors"
	"github.com/stretchr/testify/require"
)

func setupTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvUserPoolID, "eu-west-1_AbCdEfGhI")
	t.Setenv(config.EnvClientID, "client-from-env")
	t.Setenv(config.EnvClientSecret, "")
	t.Setenv(config.EnvRegion, "EU_WEST_1")
	t.Setenv(config.EnvEndpoint, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv("COGNITO_KEYCHAIN_DIR", "")
	t.Setenv("COGNITO_REDIS_ADDR", "")
}

func TestLoad(t *testing.T) {
	setupTestEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "eu-west-1_AbCdEfGhI", cfg.GetUserPoolID())
	require.Equal(t, "client-from-env", cfg.GetClientID())
	require.Empty(t, cfg.GetClientSecret())
	require.Equal(t, identity.RegionEUWest1, cfg.GetRegion())
	require.False(t, cfg.GetVerifyIDToken())
	require.Equal(t, "Cognito Bridge", cfg.GetAppName())
	require.Empty(t, cfg.GetRedisAddr())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.EnvUserPoolID, "us-east-1_x")
	t.Setenv(config.EnvClientID, "c")
	t.Setenv(config.EnvRegion, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv("COGNITO_KEYCHAIN_DIR", "")
	t.Setenv("ENV", "")
	t.Setenv("APP_NAME", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, identity.DefaultRegion, cfg.GetRegion())
	require.Equal(t, "info", cfg.GetLogLevel())
	require.Equal(t, "DEV", cfg.GetEnv())
	require.Equal(t, "./data/keychain", cfg.GetKeychainDir())
}

func TestLoadWithOverrides(t *testing.T) {
	setupTestEnv(t)

	cfg, err := config.LoadWithOverrides(map[string]string{
		config.EnvClientID:     "client-from-flag",
		config.EnvRegion:       "ap-southeast-2",
		config.EnvLogLevel:     "debug",
		config.EnvClientSecret: "",
	})
	require.NoError(t, err)
	require.Equal(t, "client-from-flag", cfg.GetClientID())
	require.Equal(t, identity.RegionAPSoutheast2, cfg.GetRegion())
	require.Equal(t, "debug", cfg.GetLogLevel())
	require.Equal(t, "eu-west-1_AbCdEfGhI", cfg.GetUserPoolID())
}

func TestLoad_Validation(t *testing.T) {
	t.Run("missing user pool id", func(t *testing.T) {
		setupTestEnv(t)
		t.Setenv(config.EnvUserPoolID, "")
		_, err := config.Load()
		require.ErrorIs(t, err, apperrors.ErrMissingUserPoolID)
	})

	t.Run("missing client id", func(t *testing.T) {
		setupTestEnv(t)
		t.Setenv(config.EnvClientID, "  ")
		_, err := config.Load()
		require.ErrorIs(t, err, apperrors.ErrMissingClientID)
	})

	t.Run("malformed boolean", func(t *testing.T) {
		setupTestEnv(t)
		t.Setenv("COGNITO_VERIFY_ID_TOKEN", "sometimes")
		_, err := config.Load()
		require.Error(t, err)
	})
}
