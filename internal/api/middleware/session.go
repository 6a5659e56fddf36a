package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grust-community/admin-panel/internal/core/domain"
)

// SessionCookieName is the httponly cookie holding the opaque panel session id.
const SessionCookieName = "panel_session"

const identityKey = "identity"

// IdentityResolver maps a session id to the signed-in staff member's
// identity. Implemented by the session service.
type IdentityResolver interface {
	Resolve(ctx context.Context, sessionID string) (domain.Identity, error)
}

// Session resolves the session cookie into an Identity and injects it into
// context. Absent or stale sessions pass through without an identity —
// rejection is left to RequireIdentity on routes that need one.
func Session(resolver IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			identity, err := resolver.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				return next(c)
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// RequireIdentity rejects with 401 when no staff identity is attached.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFrom(c); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "session not found")
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the signed-in identity, if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}
