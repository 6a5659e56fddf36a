package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/grust-community/admin-panel/internal/api/middleware"
	"github.com/grust-community/admin-panel/internal/core/ports"
)

// credentialTTL matches the upstream token lifetime: the cookie expires
// after 7 days and the staff member re-enters a fresh token.
const credentialTTL = 7 * 24 * time.Hour

// CredentialHandler manages the stored moderation token: set, clear, test,
// and the identity cross-check.
type CredentialHandler struct {
	service ports.PanelService
	secure  bool
}

// NewCredentialHandler creates a CredentialHandler. secure controls the
// cookie Secure attribute and should be true outside development.
func NewCredentialHandler(service ports.PanelService, secure bool) *CredentialHandler {
	return &CredentialHandler{service: service, secure: secure}
}

// Set stores a new credential in the jwt cookie, overwriting any previous one.
//
// @Summary      Store the moderation token
// @Tags         credential
// @Accept       json
// @Produce      json
// @Param        body  body      setCredentialRequest  true  "Token"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/credential [post]
func (h *CredentialHandler) Set(c echo.Context) error {
	var req setCredentialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "JWT is required")
	}

	c.SetCookie(h.cookie(req.JWT, int(credentialTTL/time.Second)))
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Clear removes the stored credential.
//
// @Summary      Clear the moderation token
// @Tags         credential
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /api/credential [delete]
func (h *CredentialHandler) Clear(c echo.Context) error {
	c.SetCookie(h.cookie("", -1))
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Test checks the stored credential against the upstream who-am-I endpoint.
//
// @Summary      Test the stored moderation token
// @Tags         credential
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/credential/test [get]
func (h *CredentialHandler) Test(c echo.Context) error {
	cred := middleware.CredentialFrom(c)

	_, raw, err := h.service.TestCredential(c.Request().Context(), cred)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "JWT is valid",
		User:    json.RawMessage(raw),
	})
}

// Validate runs the full cross-check between the stored credential and the
// signed-in identity. Mismatch and insufficient privilege are both hard 403s.
//
// @Summary      Validate the token against the signed-in account
// @Tags         credential
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/credential/validate [post]
func (h *CredentialHandler) Validate(c echo.Context) error {
	identity, _ := middleware.IdentityFrom(c)
	cred := middleware.CredentialFrom(c)

	_, raw, err := h.service.ValidateCredential(c.Request().Context(), identity, cred)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		Success: true,
		Message: "JWT token is valid and matches your account",
		User:    json.RawMessage(raw),
	})
}

// Me returns the upstream user object for the stored credential unchanged.
//
// @Summary      Current moderator profile
// @Tags         credential
// @Produce      json
// @Success      200  {object}  dataResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/me [get]
func (h *CredentialHandler) Me(c echo.Context) error {
	cred := middleware.CredentialFrom(c)

	_, raw, err := h.service.TestCredential(c.Request().Context(), cred)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: json.RawMessage(raw)})
}

func (h *CredentialHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CredentialCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secure,
		MaxAge:   maxAge,
	}
}
