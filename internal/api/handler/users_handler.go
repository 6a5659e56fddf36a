package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/grust-community/admin-panel/internal/api/middleware"
	"github.com/grust-community/admin-panel/internal/core/ports"
)

// defaultListLimit matches the user directory's page size.
const defaultListLimit = 21

// UsersHandler relays the upstream user directory.
type UsersHandler struct {
	service ports.PanelService
}

func NewUsersHandler(service ports.PanelService) *UsersHandler {
	return &UsersHandler{service: service}
}

// List relays GET /api/users with upstream pagination passed through verbatim.
//
// @Summary      List platform users
// @Tags         users
// @Produce      json
// @Param        search  query  string  false  "Search term"
// @Param        limit   query  int     false  "Page size (default 21)"
// @Param        offset  query  int     false  "Page offset"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /api/users [get]
func (h *UsersHandler) List(c echo.Context) error {
	data, err := h.service.ListUsers(c.Request().Context(), middleware.CredentialFrom(c), listInput(c))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, data)
}

// Get relays a single user profile.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Param        uid  path  string  true  "Platform user id"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /api/users/{uid} [get]
func (h *UsersHandler) Get(c echo.Context) error {
	data, err := h.service.GetUser(c.Request().Context(), middleware.CredentialFrom(c), c.Param("uid"))
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, data)
}

// listInput reads search/limit/offset query parameters with the panel's
// defaults; malformed numbers fall back to the defaults rather than erroring,
// matching the lenient directory contract.
func listInput(c echo.Context) ports.ListInput {
	in := ports.ListInput{
		Search: c.QueryParam("search"),
		Limit:  defaultListLimit,
		Offset: 0,
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		in.Limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
		in.Offset = v
	}
	return in
}
