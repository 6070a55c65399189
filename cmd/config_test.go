package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func minimalEnv() map[string]string {
	return map[string]string{
		"DB_HOST": "localhost",
		"DB_USER": "delivery",
		"DB_NAME": "marketplace",
	}
}

func TestConfigFrom_Defaults(t *testing.T) {
	cfg, err := configFrom(envMap(minimalEnv()))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSslMode)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.PaymentGatewayDelay)
	assert.Equal(t, 10*time.Second, cfg.PaymentGatewayTimeout)
	assert.Equal(t, uint64(3), cfg.PaymentGatewayMaxRetries)
	assert.Nil(t, cfg.PaymentGatewayDeclineAbove)
	assert.Equal(t, 2*time.Minute, cfg.PaymentStaleAfter)
	assert.Equal(t, "@every 30s", cfg.PaymentTimeoutSchedule)
	assert.Equal(t, 30*time.Minute, cfg.FailedOrderExpireAfter)
	assert.Equal(t, "@every 1m", cfg.FailedOrderExpirySchedule)
}

func TestConfigFrom_Overrides(t *testing.T) {
	env := minimalEnv()
	env["LOG_LEVEL"] = "debug"
	env["PAYMENT_GATEWAY_DELAY"] = "150ms"
	env["PAYMENT_GATEWAY_MAX_RETRIES"] = "0"
	env["PAYMENT_GATEWAY_DECLINE_ABOVE"] = "999.99"

	cfg, err := configFrom(envMap(env))

	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 150*time.Millisecond, cfg.PaymentGatewayDelay)
	assert.Equal(t, uint64(0), cfg.PaymentGatewayMaxRetries)
	require.NotNil(t, cfg.PaymentGatewayDeclineAbove)
	assert.Equal(t, "999.99", cfg.PaymentGatewayDeclineAbove.Amount().String())
}

func TestConfigFrom_ReportsEveryProblem(t *testing.T) {
	cfg, err := configFrom(envMap(map[string]string{
		"PAYMENT_GATEWAY_TIMEOUT":     "soon",
		"PAYMENT_GATEWAY_MAX_RETRIES": "-1",
	}))

	require.Error(t, err)
	assert.Zero(t, cfg)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	for _, key := range []string{"DB_HOST", "DB_USER", "DB_NAME", "PAYMENT_GATEWAY_TIMEOUT", "PAYMENT_GATEWAY_MAX_RETRIES"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg, err := configFrom(envMap(minimalEnv()))
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 user=delivery password= dbname=marketplace sslmode=disable",
		cfg.DSN())
}

func TestLoadConfig_EnvironmentWinsOverFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"DB_HOST=file-host\nDB_USER=file-user\nDB_NAME=file-db\nHTTP_PORT=9000\n",
	), 0o600))
	t.Setenv("DB_HOST", "env-host")

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "env-host", cfg.DBHost)
	assert.Equal(t, "file-user", cfg.DBUser)
	assert.Equal(t, "9000", cfg.HTTPPort)
}

func TestLoadConfig_MissingFileIsIgnored(t *testing.T) {
	t.Setenv("DB_HOST", "h")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_NAME", "n")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))

	require.NoError(t, err)
}
