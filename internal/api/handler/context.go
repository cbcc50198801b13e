package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/job-board/internal/api/middleware"
	"github.com/99minutos/job-board/internal/core/domain"
)

// ctxUser returns the account attached by the Auth middleware. Handlers
// behind the middleware chain always have one; its absence means the route
// was registered without Auth.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// queryInt parses an integer query parameter. Missing or non-numeric values
// yield 0 so the service applies its defaults.
func queryInt(c echo.Context, name string) int {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// bindAndValidate decodes the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	return c.Validate(req)
}
