package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRun_SeedsEmptyStore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	passwords := auth.NewPasswordService(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	res, err := Run(ctx, db, passwords, logger)
	require.NoError(t, err)
	assert.Equal(t, Result{Users: len(users), Characters: len(characters), Planets: len(planets), Vehicles: len(vehicles)}, res)

	stored, err := db.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, stored, len(users))
	assert.NoError(t, passwords.Verify(stored[0].Password, users[0].Password), "passwords are stored hashed")

	planetRows, err := db.ListPlanets(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tatooine", *planetRows[0].Name)
	assert.Nil(t, planetRows[2].Population, "Hoth has no recorded population")
}

func TestRun_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	passwords := auth.NewPasswordService(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := Run(ctx, db, passwords, logger)
	require.NoError(t, err)

	res, err := Run(ctx, db, passwords, logger)
	require.NoError(t, err)
	assert.True(t, res.Empty())

	characters, err := db.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Len(t, characters, 4)
}
