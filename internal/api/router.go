package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/authgate/auth-api/docs" // Swagger docs
	"github.com/authgate/auth-api/internal/api/handler"
	"github.com/authgate/auth-api/internal/api/middleware"
	"github.com/authgate/auth-api/internal/core/domain"
	"github.com/authgate/auth-api/internal/core/ports"
)

// Deps carries everything NewRouter wires into the routes.
type Deps struct {
	AuthService ports.AuthService
	UserService ports.UserService
	Tokens      ports.TokenVerifier
	Validator   echo.Validator
	Logger      zerolog.Logger

	Cookie      handler.CookieConfig
	CORSOrigins []string
	RateLimit   middleware.RateLimitConfig
	Probes      []handler.Pinger

	// Registerer and Gatherer default to the prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = d.Validator
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper:    isOperational,
	}))

	rl := d.RateLimit
	rl.Skipper = isOperational
	rl.Logger = d.Logger
	e.Use(middleware.RateLimit(rl))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.Cookie)
	userHandler := handler.NewUserHandler(d.UserService)
	healthHandler := handler.NewHealthHandler(d.Probes...)

	requireAuth := middleware.Auth(d.Tokens)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	adminOrSelf := middleware.RBACOrSelf("id", domain.RoleAdmin)

	// --- API routes ---
	g := e.Group("/api")
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)
	g.POST("/logout", authHandler.Logout, requireAuth)
	g.GET("/profile", authHandler.Profile, requireAuth)

	g.GET("/admin/data", userHandler.AdminData, requireAuth, adminOnly)
	g.GET("/user/:id", userHandler.GetByID, requireAuth, adminOrSelf)
	g.GET("/users", userHandler.List, requireAuth, adminOnly)
	g.PUT("/user/reset-password/:id", userHandler.ResetPassword, requireAuth, adminOnly)
	g.DELETE("/user/delete/:id", userHandler.Delete, requireAuth, adminOnly)

	// --- Operational routes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func isOperational(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper:      isOperational,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
