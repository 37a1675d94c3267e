package ports

import (
	"context"

	"github.com/authgate/auth-api/internal/core/domain"
)

// UserDirectory is the persistent user store. Read methods leave
// PasswordHash empty except FindCredentialsByEmail, which exists only for
// login verification.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindCredentialsByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create inserts a new user and returns it with its assigned id. A
	// duplicate email is reported as domain.ErrEmailTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	DeleteByID(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
