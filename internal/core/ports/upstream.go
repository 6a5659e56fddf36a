package ports

import (
	"context"
	"net/url"

	"github.com/grust-community/admin-panel/internal/core/domain"
)

// UpstreamClient performs a single synchronous call against the gRust API,
// attaching the credential as the jwt cookie. Implementations never retry and
// never cache.
//
// endpoint is the route template ("/users/:uid") used as the metric label so
// parameterized paths stay one series; path is the concrete request path.
// They are identical for static routes.
//
// Failure classes:
//   - upstream non-2xx       → *domain.UpstreamError carrying the status
//   - transport/parse errors → wrapped domain.ErrUpstreamUnreachable
//
// A missing credential must be rejected by callers before Do is reached.
type UpstreamClient interface {
	Do(ctx context.Context, cred domain.Credential, method, endpoint, path string, query url.Values, body any) (*domain.UpstreamEnvelope, error)
}
