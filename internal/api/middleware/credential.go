package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/grust-community/admin-panel/internal/core/domain"
)

// CredentialCookieName is the httponly cookie holding the opaque moderation
// token forwarded to the upstream API.
const CredentialCookieName = "jwt"

const credentialKey = "credential"

// Credential extracts the jwt cookie into the request context without
// rejecting. Handlers that can answer without a credential (payload
// validation, session operations) run behind this alone.
func Credential() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(CredentialCookieName); err == nil && cookie.Value != "" {
				c.Set(credentialKey, domain.Credential{Token: cookie.Value})
			}
			return next(c)
		}
	}
}

// RequireCredential rejects with 401 when no credential is stored. The error
// handler renders the remediation hint.
func RequireCredential() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CredentialFrom(c).IsZero() {
				return domain.ErrMissingCredential
			}
			return next(c)
		}
	}
}

// CredentialFrom returns the stored credential, zero when absent.
func CredentialFrom(c echo.Context) domain.Credential {
	cred, _ := c.Get(credentialKey).(domain.Credential)
	return cred
}
