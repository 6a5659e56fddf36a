package ports

import (
	"context"
	"time"

	"github.com/grust-community/admin-panel/internal/core/domain"
)

// SessionStore persists identity sessions keyed by an opaque session id.
// Entries expire server-side after the configured TTL.
type SessionStore interface {
	Save(ctx context.Context, id string, identity domain.Identity, ttl time.Duration) error
	Find(ctx context.Context, id string) (domain.Identity, error)
	Delete(ctx context.Context, id string) error
}

// SessionService exchanges provider-signed identity assertions for panel
// sessions and resolves session ids back to identities.
type SessionService interface {
	// Exchange verifies the assertion and creates a session, returning the
	// new session id alongside the asserted identity.
	Exchange(ctx context.Context, assertion string) (string, domain.Identity, error)

	Resolve(ctx context.Context, sessionID string) (domain.Identity, error)
	Destroy(ctx context.Context, sessionID string) error
}
