package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/job-board/internal/api/metrics"
	"github.com/99minutos/job-board/internal/core/domain"
)

// RequireRole admits only accounts attached by Auth that hold one of
// allowedRoles. It must run after Auth; without an attached account the
// request is refused. Refusals return domain.ErrForbidden for the HTTP
// error handler to render.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFromContext(c)
			if !ok {
				metrics.AuthFailuresTotal.WithLabelValues(reasonForbidden).Inc()
				return domain.ErrForbidden
			}
			if _, ok := allowed[user.Role]; !ok {
				metrics.AuthFailuresTotal.WithLabelValues(reasonForbidden).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
