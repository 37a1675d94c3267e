package ports

import (
	"context"

	"github.com/authgate/auth-api/internal/core/domain"
)

// RegisterInput is the registration payload.
type RegisterInput struct {
	FullName string `json:"fullName" validate:"required,min=3,max=80"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,uppercase_letter"`
	Role     string `json:"role"     validate:"required,oneof=user admin"`
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService covers the public credential flows.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Profile, error)
	Login(ctx context.Context, in LoginInput) (string, error)
	Profile(identity domain.Identity) domain.Profile
}
