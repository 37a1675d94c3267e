package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/authgate/auth-api/internal/core/domain"
)

// DefaultTokenTTL is used when no ttl is configured.
const DefaultTokenTTL = 2 * time.Hour

// tokenPrecision is the resolution of iat and exp in issued tokens.
const tokenPrecision = time.Millisecond

func init() {
	jwt.TimePrecision = tokenPrecision
}

// Claims is the JWT payload.
type Claims struct {
	ID       string   `json:"id"`
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 tokens with a single process-wide secret.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a JWTManager.
type Option func(*JWTManager)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(m *JWTManager) { m.now = now }
}

func NewJWTManager(secret string, ttl time.Duration, opts ...Option) *JWTManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	m := &JWTManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the configured token lifetime.
func (m *JWTManager) TTL() time.Duration { return m.ttl }

// Issue signs identity. The issue time is truncated to tokenPrecision so that
// exp is exactly iat+ttl as encoded.
func (m *JWTManager) Issue(identity domain.Identity) (string, error) {
	now := m.now().UTC().Truncate(tokenPrecision)
	roles := make([]string, len(identity.Roles))
	for i, r := range identity.Roles {
		roles[i] = string(r)
	}
	claims := Claims{
		ID:       identity.ID,
		FullName: identity.FullName,
		Email:    identity.Email,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates token. A token is accepted while now < exp.
// Any failure (signature, structure, expiry) yields domain.ErrInvalidToken.
func (m *JWTManager) Verify(token string) (*domain.Identity, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, &domain.Error{
			Kind:    domain.ErrInvalidToken.Kind,
			Code:    domain.ErrInvalidToken.Code,
			Message: domain.ErrInvalidToken.Message,
			Err:     err,
		}
	}

	roles := make([]domain.Role, len(claims.Roles))
	for i, r := range claims.Roles {
		roles[i] = domain.Role(r)
	}
	return &domain.Identity{
		ID:       claims.ID,
		FullName: claims.FullName,
		Email:    claims.Email,
		Roles:    roles,
	}, nil
}
