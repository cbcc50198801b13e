package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/job-board/internal/api/metrics"
	"github.com/99minutos/job-board/internal/core/domain"
	"github.com/99minutos/job-board/internal/core/ports"
)

// ContextUserKey is the echo context key holding the authenticated *domain.User.
const ContextUserKey = "user"

const (
	reasonMissingHeader   = "missing_header"
	reasonMalformedHeader = "malformed_header"
	reasonInvalidToken    = "invalid_token"
	reasonUnknownSubject  = "unknown_subject"
	reasonLookupFailed    = "lookup_failed"
	reasonForbidden       = "forbidden"
)

// Auth requires "Authorization: Bearer <token>", verifies the token and
// attaches the account behind it to the context. Every failure yields the
// same 401 body; the reason is only logged and counted.
func Auth(authenticator ports.Authenticator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if strings.TrimSpace(authHeader) == "" {
				return unauthorized(c, log, reasonMissingHeader, nil)
			}

			fields := strings.Fields(authHeader)
			if len(fields) != 2 || !strings.EqualFold(fields[0], "bearer") {
				return unauthorized(c, log, reasonMalformedHeader, nil)
			}

			user, err := authenticator.Authenticate(c.Request().Context(), fields[1])
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUserNotFound):
					return unauthorized(c, log, reasonUnknownSubject, err)
				case errors.Is(err, domain.ErrUnauthorized):
					return unauthorized(c, log, reasonInvalidToken, err)
				default:
					return unauthorized(c, log, reasonLookupFailed, err)
				}
			}

			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// UserFromContext returns the account attached by Auth, if any.
func UserFromContext(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(ContextUserKey).(*domain.User)
	return user, ok && user != nil
}

func unauthorized(c echo.Context, log zerolog.Logger, reason string, err error) error {
	metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()

	ev := log.Warn()
	if reason == reasonLookupFailed {
		ev = log.Error()
	}
	ev.Err(err).
		Str("reason", reason).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request rejected by auth")

	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
}
