package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/authgate/auth-api/internal/api/middleware"
)

// CookieConfig controls the attributes of the token cookie.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

func (cfg CookieConfig) set(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// clear expires the cookie with the attributes it was set with so browsers
// match and drop it.
func (cfg CookieConfig) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
