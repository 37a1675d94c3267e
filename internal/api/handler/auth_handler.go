package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authgate/auth-api/internal/api/metrics"
	"github.com/authgate/auth-api/internal/api/middleware"
	"github.com/authgate/auth-api/internal/core/domain"
	"github.com/authgate/auth-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegisterInput  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var in ports.RegisterInput
	if err := c.Bind(&in); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
		return errInvalidBody
	}

	profile, err := h.authService.Register(c.Request().Context(), in)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(resultLabel(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, userResponse{Message: "User registered successfully!", User: *profile})
}

// Login verifies credentials and sets the token cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      ports.LoginInput  true  "Login credentials"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var in ports.LoginInput
	if err := c.Bind(&in); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_input").Inc()
		return errInvalidBody
	}

	token, err := h.authService.Login(c.Request().Context(), in)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(resultLabel(err)).Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.cookie.set(c, token)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged in successfully!"})
}

// Logout clears the token cookie. The token itself stays valid until it expires.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookie.clear(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully!"})
}

// Profile returns the authenticated user's profile as carried by the token.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.ErrTokenMissing
	}
	return c.JSON(http.StatusOK, userResponse{
		Message: "Welcome to your profile",
		User:    h.authService.Profile(*identity),
	})
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrEmailTaken):
		return "conflict"
	case domain.KindOf(err) == domain.KindValidation:
		return "invalid_input"
	default:
		return "error"
	}
}
