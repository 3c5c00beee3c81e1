package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/starwars-api/internal/config"
)

// runCLI executes the root command against a sqlite file in a temp dir.
func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DB_PATH", dbPath)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.json"), "--env-file", ""}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCreateUserCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "data", "starwars.db")

	out, err := runCLI(t, db, "create-user", "--email", "rey@jakku.net", "--password", "scavenger")
	require.NoError(t, err)
	assert.Contains(t, out, "created user 1 <rey@jakku.net>")

	out, err = runCLI(t, db, "create-user", "--email", "rey@jakku.net", "--password", "scavenger")
	assert.Error(t, err)
	assert.Contains(t, out, "user already exists")
}

func TestCreateUserCommand_RequiresFlags(t *testing.T) {
	_, err := runCLI(t, filepath.Join(t.TempDir(), "x.db"), "create-user", "--email", "rey@jakku.net")
	assert.Error(t, err)
}

func TestSeedCommand_Idempotent(t *testing.T) {
	db := filepath.Join(t.TempDir(), "starwars.db")

	out, err := runCLI(t, db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 3 users")

	out, err = runCLI(t, db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")
}

func TestMigrateCommand(t *testing.T) {
	_, err := runCLI(t, filepath.Join(t.TempDir(), "starwars.db"), "migrate")
	assert.NoError(t, err)
}

func TestNewLogger_Level(t *testing.T) {
	ctx := context.Background()

	logger := newLogger(config.LogConfig{Level: "warn", Format: "json"})
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))

	logger = newLogger(config.LogConfig{Level: "DEBUG", Format: "text"})
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}
