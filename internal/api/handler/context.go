package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/placequest/explorer-api/internal/api/middleware"
	"github.com/placequest/explorer-api/internal/core/domain"
)

// currentUser returns the user resolved by middleware.LoadUser. Its absence
// means the route was mounted without the principal middleware; the request
// is treated as unauthenticated rather than trusted.
func currentUser(c echo.Context) (*domain.User, error) {
	u, ok := c.Get(middleware.ContextUser).(*domain.User)
	if !ok || u == nil {
		return nil, domain.ErrUnauthenticated
	}
	return u, nil
}

// currentOperator returns the operator resolved by middleware.LoadOperator.
func currentOperator(c echo.Context) (*domain.Operator, error) {
	op, ok := c.Get(middleware.ContextOperator).(*domain.Operator)
	if !ok || op == nil {
		return nil, domain.ErrUnauthenticated
	}
	return op, nil
}
