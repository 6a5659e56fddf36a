package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grust-community/admin-panel/internal/api/middleware"
	"github.com/grust-community/admin-panel/internal/core/ports"
)

// SessionExchanger is the slice of the session service the handler needs.
type SessionExchanger interface {
	ports.SessionService
	TTL() time.Duration
}

// SessionHandler manages the identity-provider session: exchange an
// assertion for a panel session, report the signed-in identity, sign out.
type SessionHandler struct {
	service SessionExchanger
	secure  bool
}

func NewSessionHandler(service SessionExchanger, secure bool) *SessionHandler {
	return &SessionHandler{service: service, secure: secure}
}

// Login exchanges a provider-signed assertion for a session cookie.
//
// @Summary      Sign in with an identity assertion
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Provider assertion"
// @Success      200   {object}  identityResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/session [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "assertion is required")
	}

	id, identity, err := h.service.Exchange(c.Request().Context(), req.Assertion)
	if err != nil {
		return err
	}

	c.SetCookie(h.cookie(id, int(h.service.TTL()/time.Second)))
	return c.JSON(http.StatusOK, identityResponse{Success: true, Identity: identity})
}

// Current reports the signed-in identity.
//
// @Summary      Current identity
// @Tags         session
// @Produce      json
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	identity, _ := middleware.IdentityFrom(c)
	return c.JSON(http.StatusOK, identityResponse{Success: true, Identity: identity})
}

// Logout destroys the session and clears the cookie. Signing out of an
// already-dead session succeeds.
//
// @Summary      Sign out
// @Tags         session
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /api/session [delete]
func (h *SessionHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.service.Destroy(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	c.SetCookie(h.cookie("", -1))
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *SessionHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secure,
		MaxAge:   maxAge,
	}
}
