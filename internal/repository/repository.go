// Package repository declares the data-access contracts.
//
// Services depend on these interfaces, never on a concrete store, so the same
// business rules run against sqlite, postgres, or a gomock Store in tests.
// Lookups by primary key return an apperror NotFound when the row is absent.
package repository

//go:generate mockgen -destination=mock/store.go -package=mock github.com/sakif/starwars-api/internal/repository Store

import (
	"context"

	"github.com/sakif/starwars-api/internal/model"
)

type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	// CreateUser returns apperror Conflict when the email is taken.
	CreateUser(ctx context.Context, user *model.User) error
}

type CharacterRepository interface {
	ListCharacters(ctx context.Context) ([]model.Character, error)
	GetCharacterByID(ctx context.Context, id int64) (*model.Character, error)
	// CreateCharacter returns apperror Conflict when the name is taken.
	CreateCharacter(ctx context.Context, character *model.Character) error
}

type VehicleRepository interface {
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	GetVehicleByID(ctx context.Context, id int64) (*model.Vehicle, error)
	CreateVehicle(ctx context.Context, vehicle *model.Vehicle) error
}

type PlanetRepository interface {
	ListPlanets(ctx context.Context) ([]model.Planet, error)
	GetPlanetByID(ctx context.Context, id int64) (*model.Planet, error)
	CreatePlanet(ctx context.Context, planet *model.Planet) error
}

type LikeRepository interface {
	ListLikesByUser(ctx context.Context, userID int64) ([]model.Like, error)
	// FindLike returns the user's like for target, or apperror NotFound.
	FindLike(ctx context.Context, userID int64, target model.Target) (*model.Like, error)
	// CreateLike returns apperror AlreadyAdded when a like for the same
	// (user, target) pair already exists.
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, id int64) error
}

// Store is the full data-access layer.
//
// WithTx runs fn against a Store bound to a single transaction. The transaction
// commits when fn returns nil and rolls back otherwise. Calling WithTx on a Store
// that is already transactional runs fn inside the existing transaction.
type Store interface {
	UserRepository
	CharacterRepository
	VehicleRepository
	PlanetRepository
	LikeRepository

	WithTx(ctx context.Context, fn func(tx Store) error) error
}
