package ports

import (
	"context"

	"github.com/grust-community/admin-panel/internal/core/domain"
)

// AuditRecorder stores the moderation audit trail. Record failures must not
// fail the proxied operation; callers log and continue.
type AuditRecorder interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
