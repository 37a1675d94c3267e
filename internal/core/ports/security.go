package ports

import (
	"context"

	"github.com/authgate/auth-api/internal/core/domain"
)

// PasswordHasher performs one-way salted hashing and comparison.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) (bool, error)
}

// TokenIssuer signs an identity into a bearer token.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

// TokenVerifier decodes a bearer token. Every failure is reported as
// domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
