package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

// FavoriteService adds and removes likes.
//
// CHECK ORDER IS PART OF THE CONTRACT:
// Clients see only the first failing check, so the order decides which message
// they get when several things are wrong at once.
//
//	Add:    existing like → target exists → user exists → insert
//	Remove: user exists → target exists → like exists → delete
//
// Each sequence runs in one store transaction, so two concurrent requests for
// the same (user, target) pair cannot both pass the checks and both write.
type FavoriteService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewFavoriteService(store repository.Store, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{store: store, logger: logger}
}

// Add records that the user likes target.
//
// Errors, in check order:
//   - AlreadyAdded  "<entity> already added"
//   - NotFound      "<entity> does not exist"
//   - NotFound      "user does not exist"
func (s *FavoriteService) Add(ctx context.Context, userID int64, target model.Target) error {
	label := target.Kind.Label()

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		_, err := tx.FindLike(ctx, userID, target)
		switch {
		case err == nil:
			return apperror.AlreadyAdded(label)
		case !errors.Is(err, apperror.ErrNotFound):
			return err
		}

		if err := lookupTarget(ctx, tx, target); err != nil {
			return err
		}

		if _, err := tx.GetUserByID(ctx, userID); err != nil {
			return err
		}

		return tx.CreateLike(ctx, model.NewLike(userID, target))
	})
	if err != nil {
		return s.fail("add favorite", userID, target, err)
	}

	s.logger.Info("favorite added",
		slog.Int64("user_id", userID),
		slog.String("kind", string(target.Kind)),
		slog.Int64("target_id", target.ID),
	)
	return nil
}

// Remove deletes the user's like for target.
//
// Errors, in check order:
//   - NotFound "user does not exist"
//   - NotFound "<entity> does not exist in favorites" (entity missing)
//   - NotFound "<entity> does not exist in favorites" (like missing)
func (s *FavoriteService) Remove(ctx context.Context, userID int64, target model.Target) error {
	label := target.Kind.Label()

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if _, err := tx.GetUserByID(ctx, userID); err != nil {
			return err
		}

		if err := lookupTarget(ctx, tx, target); err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return apperror.NotInFavorites(label)
			}
			return err
		}

		like, err := tx.FindLike(ctx, userID, target)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return apperror.NotInFavorites(label)
			}
			return err
		}

		if err := tx.DeleteLike(ctx, like.ID); err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return apperror.NotInFavorites(label)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return s.fail("remove favorite", userID, target, err)
	}

	s.logger.Info("favorite removed",
		slog.Int64("user_id", userID),
		slog.String("kind", string(target.Kind)),
		slog.Int64("target_id", target.ID),
	)
	return nil
}

// fail passes application errors through untouched and logs and wraps
// everything else.
func (s *FavoriteService) fail(action string, userID int64, target model.Target, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	s.logger.Error("failed to "+action,
		slog.Int64("user_id", userID),
		slog.String("kind", string(target.Kind)),
		slog.Int64("target_id", target.ID),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("%s: %w", action, err)
}

// lookupTarget returns apperror NotFound ("<entity> does not exist") when the
// entity behind target is missing.
func lookupTarget(ctx context.Context, store repository.Store, target model.Target) error {
	var err error
	switch target.Kind {
	case model.KindCharacter:
		_, err = store.GetCharacterByID(ctx, target.ID)
	case model.KindVehicle:
		_, err = store.GetVehicleByID(ctx, target.ID)
	case model.KindPlanet:
		_, err = store.GetPlanetByID(ctx, target.ID)
	default:
		return apperror.ValidationFailed("kind", fmt.Sprintf("unknown favorite kind %q", target.Kind))
	}
	return err
}
