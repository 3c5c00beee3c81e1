// Package auth hashes user passwords.
//
// Users are created out of band (seed data, the create-user command), never
// through the HTTP API, and only the bcrypt hash is stored. The hash is
// self-contained: $2a$<cost>$<22-char salt><31-char hash>.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/starwars-api/internal/apperror"
)

// DefaultCost is the bcrypt work factor for real accounts (~250ms per hash).
// config uses it when BCRYPT_COST is unset.
const DefaultCost = 12

// maxPasswordBytes is bcrypt's input limit. Longer input is silently truncated
// by the algorithm, so it is rejected instead.
const maxPasswordBytes = 72

// PasswordService hashes and verifies passwords with a fixed bcrypt cost.
// Seed data and tests pass bcrypt.MinCost to stay fast.
type PasswordService struct {
	cost int
}

// NewPasswordService returns a PasswordService using cost, clamped to
// bcrypt's allowed range.
func NewPasswordService(cost int) *PasswordService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &PasswordService{cost: cost}
}

// Hash returns the bcrypt hash of plaintext.
// Empty and over-long passwords are validation errors.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", apperror.ValidationFailed("password", "password is required")
	}
	if len(plaintext) > maxPasswordBytes {
		return "", apperror.ValidationFailed("password",
			fmt.Sprintf("password must be %d bytes or fewer", maxPasswordBytes))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify returns nil when plaintext matches hash.
// The API has no login, so nothing in the server calls it; the seed tests use
// it to check that stored passwords are real hashes of the seed plaintext.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
