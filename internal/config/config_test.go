package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/starwars-api/internal/auth"
)

// clearEnv registers a restore for each key and then unsets it, so the test
// sees a clean environment and the caller's environment comes back afterwards.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

var allKeys = []string{
	"APP_NAME", "PORT", "SHUTDOWN_TIMEOUT", "DATABASE_URL", "DB_PATH",
	"LOG_LEVEL", "LOG_FORMAT", "BCRYPT_COST", "RATE_LIMIT", "RATE_BURST",
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, allKeys...)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "starwars-api", cfg.App.Name)
	assert.Equal(t, 3000, cfg.App.Port)
	assert.Equal(t, 30, cfg.App.ShutdownTimeout)
	assert.Zero(t, cfg.App.RateLimit)
	assert.Equal(t, 20, cfg.App.RateBurst)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, auth.DefaultCost, cfg.Auth.BcryptCost)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t, allKeys...)

	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"app":{"port":4000},"log":{"level":"debug"}}`), 0o644))
	t.Setenv("PORT", "5000")

	cfg, err := Load("", file)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.App.Port, "env wins over file")
	assert.Equal(t, "debug", cfg.Log.Level, "file wins over default")
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	clearEnv(t, allKeys...)

	cfg, err := Load("", filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.App.Port)
}

func TestLoad_DotenvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t, allKeys...)

	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("DATABASE_URL=postgres://u:p@db:5432/starwars\nLOG_LEVEL=warn\n"), 0o644))
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load(dotenv)
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/starwars", cfg.Database.URL)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_MissingDotenvIsIgnored(t *testing.T) {
	clearEnv(t, allKeys...)

	_, err := Load(filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port out of range", "PORT", "70000"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
		{"unknown log format", "LOG_FORMAT", "xml"},
		{"negative rate limit", "RATE_LIMIT", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t, allKeys...)
			t.Setenv(tt.key, tt.val)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_BcryptCostFromEnv(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv("BCRYPT_COST", "4")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
}
