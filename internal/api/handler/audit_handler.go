package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/grust-community/admin-panel/internal/core/domain"
	"github.com/grust-community/admin-panel/internal/core/ports"
)

const defaultAuditLimit = 50

// AuditHandler serves the moderation audit trail.
type AuditHandler struct {
	audit ports.AuditRecorder
}

func NewAuditHandler(audit ports.AuditRecorder) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// Recent serves GET /api/audit?limit — the latest panel actions, newest first.
//
// @Summary      Recent moderation actions
// @Tags         audit
// @Produce      json
// @Param        limit  query  int  false  "Max entries (default 50)"
// @Success      200  {object}  auditResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/audit [get]
func (h *AuditHandler) Recent(c echo.Context) error {
	limit := defaultAuditLimit
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}

	entries, err := h.audit.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}

	return c.JSON(http.StatusOK, auditResponse{Success: true, Data: entries})
}
