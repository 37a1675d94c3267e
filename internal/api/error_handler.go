package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/authgate/auth-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to a status by kind.
//   - Keeps the status of echo's own errors (unknown route, body too large, rate limit).
//   - Logs anything else and answers with a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	if de, ok := domain.AsError(err); ok && de.Kind != domain.KindInternal {
		return statusFor(de), errorResponse{Message: de.Message, Code: de.Code}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logUnhandled(log, c, err)
		}
		return he.Code, errorResponse{Message: httpErrorMessage(he), Code: codeForStatus(he.Code)}
	}

	logUnhandled(log, c, err)
	return http.StatusInternalServerError, errorResponse{Message: "internal server error", Code: domain.CodeServer}
}

// statusFor maps error kinds to HTTP statuses. A rejected token is 403 rather
// than 401: the client presented a credential and it was refused.
func statusFor(de *domain.Error) int {
	switch de.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuthentication:
		if de.Code == domain.CodeTokenInvalid {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case domain.KindAuthorization:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.CodeValidation
	case http.StatusUnauthorized:
		return domain.CodeAuthentication
	case http.StatusForbidden:
		return domain.CodeAuthorization
	case http.StatusNotFound:
		return domain.CodeNotFound
	case http.StatusConflict:
		return domain.CodeConflict
	}
	if status >= http.StatusInternalServerError {
		return domain.CodeServer
	}
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

func httpErrorMessage(he *echo.HTTPError) string {
	if he.Code >= http.StatusInternalServerError {
		return "internal server error"
	}
	if msg, ok := he.Message.(string); ok {
		return msg
	}
	return fmt.Sprintf("%v", he.Message)
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
