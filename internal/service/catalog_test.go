package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository/mock"
)

func newCatalog(t *testing.T) (*CatalogService, *mock.MockStore) {
	t.Helper()
	store := mock.NewMockStore(gomock.NewController(t))
	return NewCatalogService(store, discardLogger()), store
}

func TestCatalog_ListCharacters(t *testing.T) {
	svc, store := newCatalog(t)
	ctx := context.Background()

	want := []model.Character{{ID: 1, Name: "Luke Skywalker"}, {ID: 2, Name: "Leia Organa"}}
	store.EXPECT().ListCharacters(ctx).Return(want, nil)

	got, err := svc.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCatalog_ListFailuresAreWrapped(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk I/O error")

	t.Run("planets", func(t *testing.T) {
		svc, store := newCatalog(t)
		store.EXPECT().ListPlanets(ctx).Return(nil, boom)

		_, err := svc.ListPlanets(ctx)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "listing planets")
	})

	t.Run("vehicles", func(t *testing.T) {
		svc, store := newCatalog(t)
		store.EXPECT().ListVehicles(ctx).Return(nil, boom)

		_, err := svc.ListVehicles(ctx)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("users", func(t *testing.T) {
		svc, store := newCatalog(t)
		store.EXPECT().ListUsers(ctx).Return(nil, boom)

		_, err := svc.ListUsers(ctx)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("likes", func(t *testing.T) {
		svc, store := newCatalog(t)
		store.EXPECT().ListLikesByUser(ctx, int64(4)).Return(nil, boom)

		_, err := svc.ListUserLikes(ctx, 4)
		assert.ErrorIs(t, err, boom)
	})
}

func TestCatalog_GetPassesNotFoundThrough(t *testing.T) {
	svc, store := newCatalog(t)
	ctx := context.Background()

	store.EXPECT().GetCharacterByID(ctx, int64(99)).Return(nil, apperror.NotFound("character"))

	_, err := svc.GetCharacter(ctx, 99)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "character does not exist", appMessage(t, err))
}

func TestCatalog_ListUserLikesDoesNotRequireUser(t *testing.T) {
	// Only ListLikesByUser is expected: a GetUserByID call would fail the test.
	svc, store := newCatalog(t)
	ctx := context.Background()

	store.EXPECT().ListLikesByUser(ctx, int64(404)).Return([]model.Like{}, nil)

	likes, err := svc.ListUserLikes(ctx, 404)
	require.NoError(t, err)
	assert.Empty(t, likes)
}
