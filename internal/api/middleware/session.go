package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/futtest/voting-system/internal/core/ports"
)

// ContextIdentityKey is where the session middleware stores the resolved
// *domain.SessionIdentity on the echo context.
const ContextIdentityKey = "identity"

// Session resolves the session cookie into an identity and attaches it to the
// request context. It never gates: requests without a cookie, with an unknown
// token, or with an expired session proceed unauthenticated, and role
// enforcement is left to RequireRole.
func Session(store ports.SessionStore, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			identity, err := store.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				// Unknown or expired token: treat as unauthenticated.
				return next(c)
			}

			c.Set(ContextIdentityKey, identity)
			return next(c)
		}
	}
}
