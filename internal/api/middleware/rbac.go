package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC admits only tokens issued for one of allowedRoles. A user token on an
// operator route is treated as unauthenticated, not forbidden.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "token not valid for this resource")
			}
			return next(c)
		}
	}
}
