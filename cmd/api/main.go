// @title        Auth API
// @version      1.0
// @description  JWT authentication and user management.
// @BasePath     /api
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        token
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/authgate/auth-api/internal/api"
	"github.com/authgate/auth-api/internal/api/handler"
	"github.com/authgate/auth-api/internal/api/metrics"
	"github.com/authgate/auth-api/internal/api/middleware"
	"github.com/authgate/auth-api/internal/core/service"
	"github.com/authgate/auth-api/internal/core/validation"
	"github.com/authgate/auth-api/internal/infrastructure/config"
	"github.com/authgate/auth-api/internal/infrastructure/db/mongo"
	"github.com/authgate/auth-api/internal/infrastructure/db/redis"
	"github.com/authgate/auth-api/internal/infrastructure/security"
	"github.com/authgate/auth-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "auth-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "auth-api",
	})

	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	log.Info().Str("db", cfg.Mongo.Database).Msg("mongo connected")

	users := mongo.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	probes := []handler.Pinger{mongo.NewPinger(mongoClient)}
	rateLimit := middleware.RateLimitConfig{
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      cfg.RateLimit.Window,
	}

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		rateLimit.Limiter = redis.NewFixedWindowLimiter(rdb, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
		probes = append(probes, redis.NewPinger(rdb))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis rate limit store connected")
	} else {
		log.Info().Msg("REDIS_ADDR not set, rate limit counters kept in memory")
	}

	// --- Core ---
	v := validation.New()
	hasher := metrics.InstrumentHasher(security.NewBcryptHasher(cfg.Auth.BcryptCost, 0))
	tokens := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	e := api.NewRouter(api.Deps{
		AuthService: service.NewAuthService(users, hasher, tokens, v, log),
		UserService: service.NewUserService(users, hasher, v, log),
		Tokens:      tokens,
		Validator:   v,
		Logger:      log,
		Cookie:      handler.CookieConfig{Secure: cfg.IsProduction(), MaxAge: cfg.Auth.CookieMaxAge},
		CORSOrigins: cfg.CORS.Origins,
		RateLimit:   rateLimit,
		Probes:      probes,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
