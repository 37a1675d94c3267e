package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/authgate/auth-api/internal/api/metrics"
	"github.com/authgate/auth-api/internal/core/access"
	"github.com/authgate/auth-api/internal/core/domain"
	"github.com/authgate/auth-api/internal/core/ports"
)

// TokenCookie carries the signed JWT between client and server.
const TokenCookie = "token"

const identityKey = "auth.identity"

// Guard adapts an access.Pipeline to echo. The token is read from the
// TokenCookie cookie and, when idParam is set, the resource id from that path
// parameter. An identity attached by an earlier Guard is carried into the
// pipeline, and the one the pipeline leaves behind is stored for handlers.
func Guard(p access.Pipeline, idParam string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := &access.Request{}
			if cookie, err := c.Cookie(TokenCookie); err == nil {
				req.Token = cookie.Value
			}
			if idParam != "" {
				req.ResourceID = c.Param(idParam)
			}
			if identity, ok := IdentityFrom(c); ok {
				req.Identity = identity
			}

			if err := p.Run(req); err != nil {
				if de, ok := domain.AsError(err); ok {
					metrics.AccessDeniedTotal.WithLabelValues(de.Code).Inc()
				}
				return err
			}

			if req.Identity != nil {
				c.Set(identityKey, req.Identity)
			}
			return next(c)
		}
	}
}

// Auth rejects requests without a valid token and attaches the identity.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return Guard(access.Chain(access.Authenticate(verifier)), "")
}

// RBAC allows the request when the authenticated identity holds any of roles.
// It must run after Auth.
func RBAC(roles ...domain.Role) echo.MiddlewareFunc {
	return Guard(access.Chain(access.RequireRoles(roles...)), "")
}

// RBACOrSelf is RBAC that also admits the owner of the resource named by the
// idParam path parameter.
func RBACOrSelf(idParam string, roles ...domain.Role) echo.MiddlewareFunc {
	return Guard(access.Chain(access.RequireRolesOrSelf(roles...)), idParam)
}

// IdentityFrom returns the identity attached by Auth.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(*domain.Identity)
	return identity, ok && identity != nil
}
