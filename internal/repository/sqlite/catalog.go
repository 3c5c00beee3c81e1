package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
)

// SCANNING NULLABLE COLUMNS:
// Most catalog columns may be NULL. Scan into a **T (the address of a *T field)
// sets the field to nil for NULL and to a fresh pointer otherwise, so the model's
// pointer fields can be scanned directly without sql.NullInt64 and friends.

// =========================================================================
// USERS
// =========================================================================

func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.q.QueryContext(ctx,
		`SELECT id, email, password FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Password); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}
	return users, nil
}

// GetUserByID retrieves a user by primary key.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := db.q.QueryRowContext(ctx,
		`SELECT id, email, password FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Email, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user")
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return &u, nil
}

// CreateUser inserts a user. user.Password must already be hashed.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	result, err := db.q.ExecContext(ctx,
		`INSERT INTO users (email, password) VALUES (?, ?)`,
		user.Email, user.Password,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user")
		}
		return fmt.Errorf("sqlite: creating user: %w", err)
	}
	if user.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading user id: %w", err)
	}
	return nil
}

// =========================================================================
// CHARACTERS (table "people")
// =========================================================================

func (db *DB) ListCharacters(ctx context.Context) ([]model.Character, error) {
	rows, err := db.q.QueryContext(ctx,
		`SELECT id, name, birth_year, homeworld, starship FROM people ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing characters: %w", err)
	}
	defer rows.Close()

	characters := make([]model.Character, 0)
	for rows.Next() {
		var c model.Character
		if err := rows.Scan(&c.ID, &c.Name, &c.BirthYear, &c.Homeworld, &c.Starship); err != nil {
			return nil, fmt.Errorf("sqlite: scanning character row: %w", err)
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating characters: %w", err)
	}
	return characters, nil
}

func (db *DB) GetCharacterByID(ctx context.Context, id int64) (*model.Character, error) {
	var c model.Character
	err := db.q.QueryRowContext(ctx,
		`SELECT id, name, birth_year, homeworld, starship FROM people WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.BirthYear, &c.Homeworld, &c.Starship)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("character")
		}
		return nil, fmt.Errorf("sqlite: getting character %d: %w", id, err)
	}
	return &c, nil
}

func (db *DB) CreateCharacter(ctx context.Context, character *model.Character) error {
	result, err := db.q.ExecContext(ctx,
		`INSERT INTO people (name, birth_year, homeworld, starship) VALUES (?, ?, ?, ?)`,
		character.Name, character.BirthYear, character.Homeworld, character.Starship,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("character")
		}
		return fmt.Errorf("sqlite: creating character: %w", err)
	}
	if character.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading character id: %w", err)
	}
	return nil
}

// =========================================================================
// VEHICLES
// =========================================================================

func (db *DB) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	rows, err := db.q.QueryContext(ctx,
		`SELECT id, name, model, vehicle_class, passengers FROM vehicle ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]model.Vehicle, 0)
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Model, &v.VehicleClass, &v.Passengers); err != nil {
			return nil, fmt.Errorf("sqlite: scanning vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating vehicles: %w", err)
	}
	return vehicles, nil
}

func (db *DB) GetVehicleByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	var v model.Vehicle
	err := db.q.QueryRowContext(ctx,
		`SELECT id, name, model, vehicle_class, passengers FROM vehicle WHERE id = ?`, id,
	).Scan(&v.ID, &v.Name, &v.Model, &v.VehicleClass, &v.Passengers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("vehicle")
		}
		return nil, fmt.Errorf("sqlite: getting vehicle %d: %w", id, err)
	}
	return &v, nil
}

func (db *DB) CreateVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	result, err := db.q.ExecContext(ctx,
		`INSERT INTO vehicle (name, model, vehicle_class, passengers) VALUES (?, ?, ?, ?)`,
		vehicle.Name, vehicle.Model, vehicle.VehicleClass, vehicle.Passengers,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating vehicle: %w", err)
	}
	if vehicle.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading vehicle id: %w", err)
	}
	return nil
}

// =========================================================================
// PLANETS
// =========================================================================

func (db *DB) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	rows, err := db.q.QueryContext(ctx,
		`SELECT id, name, population, gravity, climate FROM planets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing planets: %w", err)
	}
	defer rows.Close()

	planets := make([]model.Planet, 0)
	for rows.Next() {
		var p model.Planet
		if err := rows.Scan(&p.ID, &p.Name, &p.Population, &p.Gravity, &p.Climate); err != nil {
			return nil, fmt.Errorf("sqlite: scanning planet row: %w", err)
		}
		planets = append(planets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating planets: %w", err)
	}
	return planets, nil
}

func (db *DB) GetPlanetByID(ctx context.Context, id int64) (*model.Planet, error) {
	var p model.Planet
	err := db.q.QueryRowContext(ctx,
		`SELECT id, name, population, gravity, climate FROM planets WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Population, &p.Gravity, &p.Climate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("planet")
		}
		return nil, fmt.Errorf("sqlite: getting planet %d: %w", id, err)
	}
	return &p, nil
}

func (db *DB) CreatePlanet(ctx context.Context, planet *model.Planet) error {
	result, err := db.q.ExecContext(ctx,
		`INSERT INTO planets (name, population, gravity, climate) VALUES (?, ?, ?, ?)`,
		planet.Name, planet.Population, planet.Gravity, planet.Climate,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating planet: %w", err)
	}
	if planet.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading planet id: %w", err)
	}
	return nil
}
