package domain

import "time"

// Audit actions recorded for mutating moderation operations.
const (
	AuditBanCreated  = "ban_created"
	AuditBanDeleted  = "ban_deleted"
	AuditWarnCreated = "warn_created"
)

// AuditEntry records a successful mutating operation performed through the
// panel. Entries describe panel actions only; the upstream API remains the
// owner of all ban/warn data.
type AuditEntry struct {
	ActorAccountID string    `json:"actor_account_id"`
	ActorName      string    `json:"actor_name,omitempty"`
	Action         string    `json:"action"`
	TargetUID      string    `json:"target_uid"`
	Reason         string    `json:"reason,omitempty"`
	Duration       int       `json:"duration,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
