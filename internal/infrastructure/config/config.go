package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is built once at startup and injected; nothing reads the environment
// after Load returns.
type Config struct {
	Port     string `env:"PORT, default=3001"`
	Env      string `env:"ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET, required"`
	TokenTTL     time.Duration `env:"JWT_EXPIRES_IN, default=2h"`
	BcryptCost   int           `env:"BCRYPT_SALT_ROUNDS, default=10"`
	CookieMaxAge time.Duration `env:"COOKIE_MAX_AGE, default=24h"`
}

type CORSConfig struct {
	Origins []string `env:"CORS_ORIGIN, default=http://localhost:3000"`
}

type RateLimitConfig struct {
	Window      time.Duration `env:"RATE_LIMIT_WINDOW, default=15m"`
	MaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS, default=100"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB, default=auth_system"`
}

// RedisConfig is optional. With an empty Addr the rate limiter keeps its
// counters in process memory.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_SALT_ROUNDS must be between 4 and 31, got %d", c.Auth.BcryptCost))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}
	if c.RateLimit.MaxRequests < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX_REQUESTS must not be negative"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether cookies must be marked Secure and logs emitted as JSON.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
