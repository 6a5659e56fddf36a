package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grust-community/admin-panel/internal/api/middleware"
	"github.com/grust-community/admin-panel/internal/core/domain"
	"github.com/grust-community/admin-panel/internal/core/ports"
)

// ModerationHandler relays ban and warn operations.
type ModerationHandler struct {
	service ports.PanelService
}

func NewModerationHandler(service ports.PanelService) *ModerationHandler {
	return &ModerationHandler{service: service}
}

// ListBans relays GET /api/bans with upstream pagination passed through.
//
// @Summary      List bans
// @Tags         moderation
// @Produce      json
// @Param        search  query  string  false  "Search term"
// @Param        limit   query  int     false  "Page size (default 21)"
// @Param        offset  query  int     false  "Page offset"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /api/bans [get]
func (h *ModerationHandler) ListBans(c echo.Context) error {
	data, err := h.service.ListBans(c.Request().Context(), middleware.CredentialFrom(c), listInput(c))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, data)
}

// CreateBan validates the payload and relays the ban. Payload validation
// runs before the credential check so a malformed request is a 400 even
// without a stored token; an omitted duration records 0 (permanent).
//
// @Summary      Create a ban
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        body  body      createBanRequest  true  "Ban details"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/bans/create [post]
func (h *ModerationHandler) CreateBan(c echo.Context) error {
	var req createBanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	duration := 0
	if req.Duration != nil {
		duration = *req.Duration
	}

	identity, _ := middleware.IdentityFrom(c)
	err := h.service.CreateBan(c.Request().Context(), identity, middleware.CredentialFrom(c), ports.CreateBanInput{
		UID:      req.UID,
		Duration: duration,
		Reason:   *req.Reason,
		Proof:    *req.Proof,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamLogicalFailure) {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to create ban")
		}
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Ban created successfully"})
}

// DeleteBan validates the payload and relays the unban.
//
// @Summary      Remove a ban
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        body  body      deleteBanRequest  true  "Unban details"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/bans/delete [post]
func (h *ModerationHandler) DeleteBan(c echo.Context) error {
	var req deleteBanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, _ := middleware.IdentityFrom(c)
	err := h.service.DeleteBan(c.Request().Context(), identity, middleware.CredentialFrom(c), ports.DeleteBanInput{
		UID:    req.UID,
		Reason: req.Reason,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamLogicalFailure) {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to remove ban")
		}
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Ban removed successfully"})
}

// ListWarns relays the warn history for one user. An empty upstream payload
// is served as an empty array.
//
// @Summary      List warnings for a user
// @Tags         moderation
// @Produce      json
// @Param        uid  path  string  true  "Platform user id"
// @Success      200  {array}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /api/warns/{uid} [get]
func (h *ModerationHandler) ListWarns(c echo.Context) error {
	data, err := h.service.ListWarns(c.Request().Context(), middleware.CredentialFrom(c), c.Param("uid"))
	if err != nil {
		return err
	}
	if len(data) == 0 || string(data) == "null" {
		return c.JSONBlob(http.StatusOK, []byte("[]"))
	}
	return c.JSONBlob(http.StatusOK, data)
}

// CreateWarn validates the payload and relays the warning.
//
// @Summary      Create a warning
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Param        body  body      createWarnRequest  true  "Warning details"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/warns/create [post]
func (h *ModerationHandler) CreateWarn(c echo.Context) error {
	var req createWarnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, _ := middleware.IdentityFrom(c)
	err := h.service.CreateWarn(c.Request().Context(), identity, middleware.CredentialFrom(c), ports.CreateWarnInput{
		UID:    req.UID,
		Reason: req.Reason,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamLogicalFailure) {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to create warn")
		}
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Warn created successfully"})
}
