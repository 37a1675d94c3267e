package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/authgate/auth-api/internal/core/domain"
	"github.com/authgate/auth-api/internal/core/ports"
	"github.com/authgate/auth-api/internal/core/validation"
)

// UserService implements the user management operations.
type UserService struct {
	users     ports.UserDirectory
	hasher    ports.PasswordHasher
	validator *validation.Validator
	logger    zerolog.Logger
}

func NewUserService(
	users ports.UserDirectory,
	hasher ports.PasswordHasher,
	validator *validation.Validator,
	logger zerolog.Logger,
) *UserService {
	return &UserService{users: users, hasher: hasher, validator: validator, logger: logger}
}

// GetByID returns the profile of the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if err := s.validator.UserID(id); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, id, "get user")
	}
	profile := user.Profile()
	return &profile, nil
}

// List returns every user's profile.
func (s *UserService) List(ctx context.Context) ([]domain.Profile, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	profiles := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}

// ResetPassword replaces the password of another user on an admin's behalf.
func (s *UserService) ResetPassword(ctx context.Context, id string, in ports.ResetPasswordInput) (bool, error) {
	if err := s.validator.Validate(in); err != nil {
		return false, err
	}
	if err := s.validator.UserID(id); err != nil {
		return false, err
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return false, notFoundOr(err, id, "reset password")
	}

	hash, err := s.hasher.Hash(ctx, in.NewPassword)
	if err != nil {
		return false, fmt.Errorf("reset password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, id, hash); err != nil {
		return false, notFoundOr(err, id, "reset password")
	}

	s.logger.Info().Str("user_id", id).Msg("password reset")
	return true, nil
}

// Delete removes the user with the given id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.validator.UserID(id); err != nil {
		return err
	}
	if err := s.users.DeleteByID(ctx, id); err != nil {
		return notFoundOr(err, id, "delete user")
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// Count returns the number of registered users.
func (s *UserService) Count(ctx context.Context) (int64, error) {
	n, err := s.users.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func notFoundOr(err error, id, op string) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.UserNotFound(id)
	}
	return fmt.Errorf("%s: %w", op, err)
}
