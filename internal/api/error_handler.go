package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/grust-community/admin-panel/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Forwards upstream HTTP error statuses with a generic body.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.) and
	// handler-level overrides carrying operation-specific messages.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Upstream HTTP errors forward the original status.
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		return ue.Status, fmt.Sprintf("API request failed with status %d", ue.Status)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusUnauthorized, "JWT not found. Please configure your JWT token in settings."
	case errors.Is(err, domain.ErrIdentityMismatch):
		return http.StatusForbidden, "JWT token does not match your account. Make sure you are using a token from the same account you used to log in to the panel."
	case errors.Is(err, domain.ErrInsufficientPrivilege):
		return http.StatusForbidden, "Access denied. Administrator privileges required."
	case errors.Is(err, domain.ErrUpstreamLogicalFailure):
		return http.StatusBadRequest, "Invalid API response"
	case errors.Is(err, domain.ErrUpstreamUnreachable):
		return http.StatusInternalServerError, "Network error connecting to gRust API"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "session not found"
	case errors.Is(err, domain.ErrInvalidAssertion):
		return http.StatusUnauthorized, "invalid identity assertion"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
