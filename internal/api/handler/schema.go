package handler

import (
	"github.com/grust-community/admin-panel/internal/core/domain"
)

// --- Request types ---

type setCredentialRequest struct {
	JWT string `json:"jwt" validate:"required"`
}

type loginRequest struct {
	Assertion string `json:"assertion" validate:"required"`
}

// createBanRequest mirrors the upstream ban contract. Reason and Proof are
// pointers: the fields must be present in the payload but may be empty
// strings. Duration omitted means 0 (permanent); negative values are
// rejected before any upstream call.
type createBanRequest struct {
	UID      string  `json:"uid"      validate:"required"`
	Duration *int    `json:"duration" validate:"omitempty,gte=0"`
	Reason   *string `json:"reason"   validate:"required"`
	Proof    *string `json:"proof"    validate:"required"`
}

type deleteBanRequest struct {
	UID    string `json:"uid"    validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

type createWarnRequest struct {
	UID    string `json:"uid"    validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

// --- Response types ---

// successResponse is the envelope for operations without a payload.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// userResponse wraps a pass-through upstream user object.
type userResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    any    `json:"user,omitempty"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type statsResponse struct {
	Success bool          `json:"success"`
	Data    *domain.Stats `json:"data"`
}

type identityResponse struct {
	Success  bool            `json:"success"`
	Identity domain.Identity `json:"identity"`
}

type auditResponse struct {
	Success bool                `json:"success"`
	Data    []domain.AuditEntry `json:"data"`
}
