// Package seed loads a small sample dataset into an empty store.
//
// Characters, planets, vehicles and users are never created over HTTP, so a
// fresh database needs this (or create-user) before the favorites endpoints
// have anything to point at.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

// Result counts what Run inserted. All zero means the store was already seeded.
type Result struct {
	Users      int
	Characters int
	Planets    int
	Vehicles   int
}

func (r Result) Empty() bool {
	return r == Result{}
}

// sampleUser is a seed account; the password is hashed before it is stored.
type sampleUser struct {
	Email    string
	Password string
}

var users = []sampleUser{
	{Email: "luke@rebellion.org", Password: "usetheforce"},
	{Email: "leia@rebellion.org", Password: "helpmeobiwan"},
	{Email: "han@falcon.io", Password: "kesselrun12"},
}

// Climate codes: 1 arid, 2 temperate, 3 frozen, 4 murky.
var planets = []model.Planet{
	{Name: model.String("Tatooine"), Population: model.Int64(200000), Gravity: model.String("1 standard"), Climate: model.Int64(1)},
	{Name: model.String("Alderaan"), Population: model.Int64(2000000000), Gravity: model.String("1 standard"), Climate: model.Int64(2)},
	{Name: model.String("Hoth"), Gravity: model.String("1.1 standard"), Climate: model.Int64(3)},
	{Name: model.String("Dagobah"), Gravity: model.String("N/A"), Climate: model.Int64(4)},
}

var characters = []model.Character{
	{Name: "Luke Skywalker", BirthYear: model.Int64(19), Homeworld: model.String("Tatooine"), Starship: model.String("X-wing")},
	{Name: "Leia Organa", BirthYear: model.Int64(19), Homeworld: model.String("Alderaan")},
	{Name: "Han Solo", BirthYear: model.Int64(29), Homeworld: model.String("Corellia"), Starship: model.String("Millennium Falcon")},
	{Name: "Yoda", BirthYear: model.Int64(896)},
}

var vehicles = []model.Vehicle{
	{Name: model.String("Sand Crawler"), Model: model.String("Digger Crawler"), VehicleClass: "wheeled", Passengers: model.Int64(30)},
	{Name: model.String("Snowspeeder"), Model: model.String("t-47 airspeeder"), VehicleClass: "airspeeder", Passengers: model.Int64(0)},
	{Name: model.String("AT-AT"), Model: model.String("All Terrain Armored Transport"), VehicleClass: "assault walker", Passengers: model.Int64(40)},
}

// Run inserts the sample dataset in one transaction. It does nothing when
// the store already has users, so running it twice is safe.
func Run(ctx context.Context, store repository.Store, passwords *auth.PasswordService, logger *slog.Logger) (Result, error) {
	existing, err := store.ListUsers(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("seed: checking users: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("store already seeded, skipping", slog.Int("users", len(existing)))
		return Result{}, nil
	}

	var res Result
	err = store.WithTx(ctx, func(tx repository.Store) error {
		for _, u := range users {
			hash, err := passwords.Hash(u.Password)
			if err != nil {
				return err
			}
			if err := tx.CreateUser(ctx, &model.User{Email: u.Email, Password: hash}); err != nil {
				return fmt.Errorf("user %s: %w", u.Email, err)
			}
			res.Users++
		}

		for _, p := range planets {
			if err := tx.CreatePlanet(ctx, &p); err != nil {
				return fmt.Errorf("planet %s: %w", *p.Name, err)
			}
			res.Planets++
		}

		for _, c := range characters {
			if err := tx.CreateCharacter(ctx, &c); err != nil {
				return fmt.Errorf("character %s: %w", c.Name, err)
			}
			res.Characters++
		}

		for _, v := range vehicles {
			if err := tx.CreateVehicle(ctx, &v); err != nil {
				return fmt.Errorf("vehicle %s: %w", *v.Name, err)
			}
			res.Vehicles++
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("seed: %w", err)
	}

	logger.Info("store seeded",
		slog.Int("users", res.Users),
		slog.Int("characters", res.Characters),
		slog.Int("planets", res.Planets),
		slog.Int("vehicles", res.Vehicles),
	)
	return res, nil
}
