// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → enforces rules, orchestrates lookups
//	Repository (Data layer)  → reads/writes the store
//
// Services take a repository.Store (an interface), never a concrete database,
// and return apperror values. They know nothing about HTTP status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

// CatalogService serves the read-only endpoints.
type CatalogService struct {
	store  repository.Store
	logger *slog.Logger
}

func NewCatalogService(store repository.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

func (s *CatalogService) ListCharacters(ctx context.Context) ([]model.Character, error) {
	characters, err := s.store.ListCharacters(ctx)
	if err != nil {
		s.logger.Error("failed to list characters", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	return characters, nil
}

// GetCharacter returns apperror NotFound ("character does not exist") for an unknown id.
func (s *CatalogService) GetCharacter(ctx context.Context, id int64) (*model.Character, error) {
	return s.store.GetCharacterByID(ctx, id)
}

func (s *CatalogService) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	planets, err := s.store.ListPlanets(ctx)
	if err != nil {
		s.logger.Error("failed to list planets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing planets: %w", err)
	}
	return planets, nil
}

func (s *CatalogService) GetPlanet(ctx context.Context, id int64) (*model.Planet, error) {
	return s.store.GetPlanetByID(ctx, id)
}

func (s *CatalogService) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		s.logger.Error("failed to list vehicles", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *CatalogService) GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error) {
	return s.store.GetVehicleByID(ctx, id)
}

func (s *CatalogService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *CatalogService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.store.GetUserByID(ctx, id)
}

// ListUserLikes returns the user's likes. It does not check that the user
// exists: an unknown user just has an empty list.
func (s *CatalogService) ListUserLikes(ctx context.Context, userID int64) ([]model.Like, error) {
	likes, err := s.store.ListLikesByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list likes",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing likes: %w", err)
	}
	return likes, nil
}
