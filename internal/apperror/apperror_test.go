package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		match  bool
	}{
		{"not found", NotFound("planet"), ErrNotFound, true},
		{"not in favorites is a not found", NotInFavorites("planet"), ErrNotFound, true},
		{"validation", ValidationFailed("user_id", "user_id must be a positive integer"), ErrValidation, true},
		{"already added is a conflict", AlreadyAdded("planet"), ErrConflict, true},
		{"conflict", Conflict("user"), ErrConflict, true},
		{"already added is not a not found", AlreadyAdded("planet"), ErrNotFound, false},
		{"match survives wrapping", fmt.Errorf("add favorite: %w", NotFound("user")), ErrNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, errors.Is(tt.err, tt.target))
		})
	}
}

func TestMessages(t *testing.T) {
	assert.EqualError(t, NotFound("planet"), "planet does not exist")
	assert.EqualError(t, NotInFavorites("character"), "character does not exist in favorites")
	assert.EqualError(t, AlreadyAdded("vehicle"), "vehicle already added")
	assert.EqualError(t, Conflict("user"), "user already exists")
	assert.EqualError(t, ValidationFailed("id", "id is required"), "id is required")
}

func TestAsRecoversMessageThroughWrapping(t *testing.T) {
	err := fmt.Errorf("remove favorite: %w", NotInFavorites("planet"))

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, "planet does not exist in favorites", appErr.Message)
	assert.Equal(t, ErrNotFound, appErr.Unwrap())
}

func TestValidationFailedField(t *testing.T) {
	assert.Equal(t, "planets_id", ValidationFailed("planets_id", "planets_id is required").Field)
}
