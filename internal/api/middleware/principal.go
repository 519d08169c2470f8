package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/placequest/explorer-api/internal/core/domain"
)

// UserResolver loads the user a token was issued for.
type UserResolver interface {
	ResolveUser(ctx context.Context, id string) (*domain.User, error)
}

// OperatorResolver loads the operator a token was issued for.
type OperatorResolver interface {
	ResolveOperator(ctx context.Context, id string) (*domain.Operator, error)
}

// LoadUser resolves the token subject into a *domain.User stored under
// ContextUser. Must run after Auth.
func LoadUser(resolver UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sub, _ := c.Get(ContextSubject).(string)
			if sub == "" {
				return domain.ErrUnauthenticated
			}
			user, err := resolver.ResolveUser(c.Request().Context(), sub)
			if err != nil {
				return err
			}
			c.Set(ContextUser, user)
			return next(c)
		}
	}
}

// LoadOperator resolves the token subject into a *domain.Operator stored
// under ContextOperator. Must run after Auth.
func LoadOperator(resolver OperatorResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sub, _ := c.Get(ContextSubject).(string)
			if sub == "" {
				return domain.ErrUnauthenticated
			}
			op, err := resolver.ResolveOperator(c.Request().Context(), sub)
			if err != nil {
				return err
			}
			c.Set(ContextOperator, op)
			return next(c)
		}
	}
}
