package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
	"github.com/sakif/starwars-api/internal/repository/mock"
)

// GOMOCK AND CHECK ORDER:
// The mock fails the test on any call that was not expected. A test that only
// expects FindLike therefore also proves that no later check ran, which is how
// the precedence rules are verified.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMockStore returns a MockStore whose WithTx runs the callback against itself.
func newMockStore(t *testing.T) *mock.MockStore {
	t.Helper()
	store := mock.NewMockStore(gomock.NewController(t))
	store.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(repository.Store) error) error {
			return fn(store)
		}).
		AnyTimes()
	return store
}

var (
	planet42  = model.Target{Kind: model.KindPlanet, ID: 42}
	character = model.Target{Kind: model.KindCharacter, ID: 3}
)

func appMessage(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "want *apperror.AppError, got %v", err)
	return appErr.Message
}

// =========================================================================
// Add
// =========================================================================

func TestAdd_Success(t *testing.T) {
	store := newMockStore(t)
	svc := NewFavoriteService(store, discardLogger())
	ctx := context.Background()

	gomock.InOrder(
		store.EXPECT().FindLike(ctx, int64(1), planet42).Return(nil, apperror.NotInFavorites("planet")),
		store.EXPECT().GetPlanetByID(ctx, int64(42)).Return(&model.Planet{ID: 42}, nil),
		store.EXPECT().GetUserByID(ctx, int64(1)).Return(&model.User{ID: 1}, nil),
		store.EXPECT().CreateLike(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, l *model.Like) error {
			assert.Equal(t, int64(1), l.UserID)
			require.NotNil(t, l.PlanetsID)
			assert.Equal(t, int64(42), *l.PlanetsID)
			assert.Nil(t, l.PeopleID)
			assert.Nil(t, l.VehicleID)
			return nil
		}),
	)

	require.NoError(t, svc.Add(ctx, 1, planet42))
}

func TestAdd_AlreadyAddedWinsOverEverything(t *testing.T) {
	// Planet and user are both missing too, but the existing like is reported.
	store := newMockStore(t)
	svc := NewFavoriteService(store, discardLogger())
	ctx := context.Background()

	store.EXPECT().FindLike(ctx, int64(1), planet42).Return(&model.Like{ID: 9}, nil)

	err := svc.Add(ctx, 1, planet42)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, "planet already added", appMessage(t, err))
}

func TestAdd_MissingTargetWinsOverMissingUser(t *testing.T) {
	store := newMockStore(t)
	svc := NewFavoriteService(store, discardLogger())
	ctx := context.Background()

	gomock.InOrder(
		store.EXPECT().FindLike(ctx, int64(1), character).Return(nil, apperror.NotInFavorites("character")),
		store.EXPECT().GetCharacterByID(ctx, int64(3)).Return(nil, apperror.NotFound("character")),
	)

	err := svc.Add(ctx, 1, character)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "character does not exist", appMessage(t, err))
}

func TestAdd_MissingUser(t *testing.T) {
	store := newMockStore(t)
	svc := NewFavoriteService(store, discardLogger())
	ctx := context.Background()

	gomock.InOrder(
		store.EXPECT().FindLike(ctx, int64(7), planet42).Return(nil, apperror.NotInFavorites("planet")),
		store.EXPECT().GetPlanetByID(ctx, int64(42)).Return(&model.Planet{ID: 42}, nil),
		store.EXPECT().GetUserByID(ctx, int64(7)).Return(nil, apperror.NotFound("user")),
	)

	err := svc.Add(ctx, 7, planet42)
	assert.Equal(t, "user does not exist", appMessage(t, err))
}

func TestAdd_VehicleTargetUsesVehicleLookup(t *testing.T) {
	store := newMockStore(t)
	svc := NewFavoriteService(store, discardLogger())
	ctx := context.Background()
	vehicle := model.Target{Kind: model.KindVehicle, ID: 5}

	gomock.InOrder(
		store.EXPECT().FindLike(ctx, int64(1), vehicle).Return(nil, apperror.NotInFavorites("vehicle")),
		store.EXPECT().GetVehicleByID(ctx, int64(5)).Return(nil, apperror.NotFound("vehicle")),
	)

	err := svc.Add(ctx, 1, vehicle)
	assert.Equal(t, "vehicle does not exist", appMessage(t, err))
}

func TestAdd_StoreFailureIsWrapped(t *testing.T) {
	store := newMockStore(t)
	svc := NewFavoriteService(store, discardLogger())
	ctx := context.Background()
	dbDown := errors.New("connection refused")

	store.EXPECT().FindLike(ctx, int64(1), planet42).Return(nil, dbDown)

	err := svc.Add(ctx, 1, planet42)
	assert.ErrorIs(t, err, dbDown)
	var appErr *apperror.AppError
	assert.False(t, errors.As(err, &appErr), "infrastructure errors must not look like AppErrors")
}

func TestAdd_UnknownKind(t *testing.T) {
	store := newMockStore(t)
	svc := NewFavoriteService(store, discardLogger())
	ctx := context.Background()
	bogus := model.Target{Kind: "starships", ID: 1}

	store.EXPECT().FindLike(ctx, int64(1), bogus).Return(nil, apperror.NotInFavorites("starships"))

	err := svc.Add(ctx, 1, bogus)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

// =========================================================================
// Remove
// =========================================================================

func TestRemove_Success(t *testing.T) {
	store := newMockStore(t)
	svc := NewFavoriteService(store, discardLogger())
	ctx := context.Background()

	gomock.InOrder(
		store.EXPECT().GetUserByID(ctx, int64(1)).Return(&model.User{ID: 1}, nil),
		store.EXPECT().GetPlanetByID(ctx, int64(42)).Return(&model.Planet{ID: 42}, nil),
		store.EXPECT().FindLike(ctx, int64(1), planet42).Return(&model.Like{ID: 77}, nil),
		store.EXPECT().DeleteLike(ctx, int64(77)).Return(nil),
	)

	require.NoError(t, svc.Remove(ctx, 1, planet42))
}

func TestRemove_MissingUserWinsOverEverything(t *testing.T) {
	store := newMockStore(t)
	svc := NewFavoriteService(store, discardLogger())
	ctx := context.Background()

	store.EXPECT().GetUserByID(ctx, int64(1)).Return(nil, apperror.NotFound("user"))

	err := svc.Remove(ctx, 1, planet42)
	assert.Equal(t, "user does not exist", appMessage(t, err))
}

func TestRemove_MissingTargetReportedAsNotInFavorites(t *testing.T) {
	store := newMockStore(t)
	svc := NewFavoriteService(store, discardLogger())
	ctx := context.Background()

	gomock.InOrder(
		store.EXPECT().GetUserByID(ctx, int64(1)).Return(&model.User{ID: 1}, nil),
		store.EXPECT().GetCharacterByID(ctx, int64(3)).Return(nil, apperror.NotFound("character")),
	)

	err := svc.Remove(ctx, 1, character)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "character does not exist in favorites", appMessage(t, err))
}

func TestRemove_MissingLike(t *testing.T) {
	store := newMockStore(t)
	svc := NewFavoriteService(store, discardLogger())
	ctx := context.Background()

	gomock.InOrder(
		store.EXPECT().GetUserByID(ctx, int64(1)).Return(&model.User{ID: 1}, nil),
		store.EXPECT().GetPlanetByID(ctx, int64(42)).Return(&model.Planet{ID: 42}, nil),
		store.EXPECT().FindLike(ctx, int64(1), planet42).Return(nil, apperror.NotInFavorites("planet")),
	)

	err := svc.Remove(ctx, 1, planet42)
	assert.Equal(t, "planet does not exist in favorites", appMessage(t, err))
}
