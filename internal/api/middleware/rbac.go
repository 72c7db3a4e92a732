package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/futtest/voting-system/internal/core/domain"
)

// RequireRole enforces role-based access control. Requests without a session
// and sessions whose role is not allowed are both rejected with the same
// access-denied error.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(ContextIdentityKey).(*domain.SessionIdentity)
			if !ok || identity == nil {
				return domain.ErrAccessDenied
			}
			if _, ok := allowed[identity.Role]; !ok {
				return domain.ErrAccessDenied
			}
			return next(c)
		}
	}
}
