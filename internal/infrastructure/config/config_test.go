package config_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/loyalty-points/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"LOYALTY_STORE", "LOYALTY_DATA_FILE", "LOYALTY_SQLITE_PATH",
		"LOYALTY_DATABASE_URL", "LOYALTY_LOG_LEVEL",
	} {
		unsetEnv(t, key)
	}

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.StoreFile, cfg.Store)
	assert.Equal(t, "customers.json", cfg.DataFile)
	assert.Equal(t, "customers.db", cfg.SQLitePath)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LOYALTY_STORE", "sqlite")
	t.Setenv("LOYALTY_SQLITE_PATH", "/tmp/points.db")
	t.Setenv("LOYALTY_LOG_LEVEL", "debug")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, config.StoreSQLite, cfg.Store)
	assert.Equal(t, "/tmp/points.db", cfg.SQLitePath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_UnknownStore(t *testing.T) {
	t.Setenv("LOYALTY_STORE", "redis")

	_, err := config.Load()

	assert.ErrorIs(t, err, config.ErrUnknownStore)
}

func TestLoad_BadLogLevel(t *testing.T) {
	unsetEnv(t, "LOYALTY_STORE")
	t.Setenv("LOYALTY_LOG_LEVEL", "loud")

	_, err := config.Load()

	assert.Error(t, err)
}

// unsetEnv removes key for the duration of the test; t.Setenv restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
