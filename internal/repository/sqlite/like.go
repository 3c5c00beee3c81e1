package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
)

const likeColumns = `id, user_id, people_id, vehicle_id, planets_id`

func scanLike(row interface{ Scan(...any) error }, l *model.Like) error {
	return row.Scan(&l.ID, &l.UserID, &l.PeopleID, &l.VehicleID, &l.PlanetsID)
}

// ListLikesByUser returns the user's likes oldest first. An unknown user
// simply has no likes.
func (db *DB) ListLikesByUser(ctx context.Context, userID int64) ([]model.Like, error) {
	rows, err := db.q.QueryContext(ctx,
		`SELECT `+likeColumns+` FROM likes WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing likes for user %d: %w", userID, err)
	}
	defer rows.Close()

	likes := make([]model.Like, 0)
	for rows.Next() {
		var l model.Like
		if err := scanLike(rows, &l); err != nil {
			return nil, fmt.Errorf("sqlite: scanning like row: %w", err)
		}
		likes = append(likes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating likes: %w", err)
	}
	return likes, nil
}

// FindLike looks up the user's like for target.
//
// The column name is interpolated, not bound: placeholders only stand for
// values. It comes from model.Kind.Column, a closed set, never from input.
func (db *DB) FindLike(ctx context.Context, userID int64, target model.Target) (*model.Like, error) {
	column := target.Kind.Column()
	if column == "" {
		return nil, fmt.Errorf("sqlite: unknown favorite kind %q", target.Kind)
	}

	var l model.Like
	err := scanLike(db.q.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM likes WHERE user_id = ? AND %s = ? ORDER BY id LIMIT 1`, likeColumns, column),
		userID, target.ID,
	), &l)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotInFavorites(target.Kind.Label())
		}
		return nil, fmt.Errorf("sqlite: finding like (user=%d %s=%d): %w", userID, column, target.ID, err)
	}
	return &l, nil
}

func (db *DB) CreateLike(ctx context.Context, like *model.Like) error {
	result, err := db.q.ExecContext(ctx,
		`INSERT INTO likes (user_id, people_id, vehicle_id, planets_id) VALUES (?, ?, ?, ?)`,
		like.UserID, like.PeopleID, like.VehicleID, like.PlanetsID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			target, _ := like.Target()
			return apperror.AlreadyAdded(target.Kind.Label())
		}
		return fmt.Errorf("sqlite: creating like for user %d: %w", like.UserID, err)
	}
	if like.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading like id: %w", err)
	}
	return nil
}

// DeleteLike removes a like by ID.
// Zero rows affected means the row was already gone.
func (db *DB) DeleteLike(ctx context.Context, id int64) error {
	result, err := db.q.ExecContext(ctx, `DELETE FROM likes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting like %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("like")
	}
	return nil
}
