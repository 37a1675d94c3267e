package ports

import (
	"context"

	"github.com/authgate/auth-api/internal/core/domain"
)

// ResetPasswordInput is the admin-initiated password reset payload.
type ResetPasswordInput struct {
	NewPassword string `json:"newPassword" validate:"required,min=8,uppercase_letter"`
}

// UserService covers user management operations.
type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	ResetPassword(ctx context.Context, id string, in ResetPasswordInput) (bool, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
