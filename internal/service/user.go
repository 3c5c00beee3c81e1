package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

const MaxEmailLength = 250

// UserService creates accounts. The HTTP API never creates users; this is
// used by the create-user command and the seeder.
type UserService struct {
	store     repository.Store
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewUserService(store repository.Store, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{store: store, passwords: passwords, logger: logger}
}

// Create validates the email, hashes the password and stores the user.
// A taken email is reported as apperror Conflict ("user already exists").
func (s *UserService) Create(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if len(email) > MaxEmailLength {
		return nil, apperror.ValidationFailed("email",
			fmt.Sprintf("email must be %d characters or less", MaxEmailLength))
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, apperror.ValidationFailed("email", "email is not a valid address")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Email: email, Password: hash}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", slog.Int64("id", user.ID), slog.String("email", user.Email))
	return user, nil
}
