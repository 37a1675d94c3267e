package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/authgate/auth-api/internal/core/domain"
	"github.com/authgate/auth-api/internal/core/ports"
	"github.com/authgate/auth-api/internal/core/validation"
)

// AuthService implements registration, login and profile projection.
type AuthService struct {
	users     ports.UserDirectory
	hasher    ports.PasswordHasher
	tokens    ports.TokenIssuer
	validator *validation.Validator
	logger    zerolog.Logger

	// dummyHash is compared against on the unknown-email login path.
	dummyHash string
}

func NewAuthService(
	users ports.UserDirectory,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	validator *validation.Validator,
	logger zerolog.Logger,
) *AuthService {
	s := &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		validator: validator,
		logger:    logger,
	}
	hash, err := hasher.Hash(context.Background(), "Unused-Placeholder-Password")
	if err != nil {
		logger.Error().Err(err).Msg("build dummy password digest")
	}
	s.dummyHash = hash
	return s
}

// Register creates a user and returns its public profile.
//
// The email lookup is only an optimistic check; the directory's unique index
// decides concurrent registrations and its rejection surfaces as the same
// conflict.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Profile, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        []domain.Role{domain.Role(in.Role)},
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			s.logger.Info().Str("email", in.Email).Msg("registration lost duplicate-email race")
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	profile := created.Profile()
	s.logger.Info().
		Str("user_id", profile.ID).
		Str("role", in.Role).
		Msg("user registered")
	return &profile, nil
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password produce the identical domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (string, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return "", err
	}

	user, err := s.users.FindCredentialsByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.burnVerify(ctx, in.Password)
			s.logger.Info().Str("reason", "unknown_email").Msg("login failed")
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, in.Password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if !ok {
		s.logger.Info().Str("user_id", user.ID).Str("reason", "password_mismatch").Msg("login failed")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return "", fmt.Errorf("login: issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, nil
}

// Profile projects the authenticated identity. The directory is not queried.
func (s *AuthService) Profile(identity domain.Identity) domain.Profile {
	return identity.Profile()
}

// burnVerify runs a comparison against a throwaway digest so a login for an
// unknown email costs the same as a wrong password.
func (s *AuthService) burnVerify(ctx context.Context, password string) {
	if s.dummyHash == "" {
		return
	}
	if _, err := s.hasher.Verify(ctx, password, s.dummyHash); err != nil {
		s.logger.Debug().Err(err).Msg("dummy password compare")
	}
}
