package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/authgate/auth-api/internal/core/domain"
	"github.com/authgate/auth-api/internal/core/validation"
	"github.com/authgate/auth-api/internal/infrastructure/security"
)

// stubDirectory is an in-memory UserDirectory whose Create enforces email
// uniqueness the way the Mongo unique index does.
type stubDirectory struct {
	mu      sync.Mutex
	seq     int
	byID    map[string]*domain.User
	byEmail map[string]string

	// findByEmailMisses makes FindByEmail always report "not found", so the
	// optimistic check passes and Create has to catch the duplicate.
	findByEmailMisses bool
	listErr           error
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func withoutHash(u *domain.User) *domain.User {
	clone := cloneUser(u)
	clone.PasswordHash = ""
	return clone
}

func (d *stubDirectory) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.findByEmailMisses {
		return nil, domain.ErrUserNotFound
	}
	id, ok := d.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return withoutHash(d.byID[id]), nil
}

func (d *stubDirectory) FindCredentialsByEmail(_ context.Context, email string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, ok := d.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(d.byID[id]), nil
}

func (d *stubDirectory) FindByID(_ context.Context, id string) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return withoutHash(u), nil
}

func (d *stubDirectory) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	email := domain.NormalizeEmail(user.Email)
	if _, exists := d.byEmail[email]; exists {
		return nil, fmt.Errorf("insert user: %w", domain.ErrEmailTaken)
	}
	d.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("%024x", d.seq)
	created.Email = email
	if len(created.Roles) == 0 {
		created.Roles = append([]domain.Role(nil), domain.DefaultRoles...)
	}
	created.CreatedAt = time.Now().UTC()
	created.UpdatedAt = created.CreatedAt
	d.byID[created.ID] = created
	d.byEmail[email] = created.ID
	return withoutHash(created), nil
}

func (d *stubDirectory) UpdatePasswordHash(_ context.Context, id, hash string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (d *stubDirectory) DeleteByID(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(d.byEmail, u.Email)
	delete(d.byID, id)
	return nil
}

func (d *stubDirectory) ListAll(_ context.Context) ([]*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listErr != nil {
		return nil, d.listErr
	}
	out := make([]*domain.User, 0, len(d.byID))
	for i := 1; i <= d.seq; i++ {
		if u, ok := d.byID[fmt.Sprintf("%024x", i)]; ok {
			out = append(out, withoutHash(u))
		}
	}
	return out, nil
}

func (d *stubDirectory) Count(_ context.Context) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.byID)), nil
}

type fixture struct {
	dir    *stubDirectory
	hasher *security.BcryptHasher
	tokens *security.JWTManager
	auth   *AuthService
	users  *UserService
}

func newFixture() *fixture {
	dir := newStubDirectory()
	hasher := security.NewBcryptHasher(bcrypt.MinCost, 0)
	tokens := security.NewJWTManager("secret", time.Hour)
	v := validation.New()
	log := zerolog.New(io.Discard)
	return &fixture{
		dir:    dir,
		hasher: hasher,
		tokens: tokens,
		auth:   NewAuthService(dir, hasher, tokens, v, log),
		users:  NewUserService(dir, hasher, v, log),
	}
}
