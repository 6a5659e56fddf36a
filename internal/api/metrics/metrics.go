// Package metrics defines and registers all custom Prometheus metrics for the
// gRust admin panel. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at package init via promauto;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "panel"

// ── Upstream proxy metrics ────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls made to the gRust API.
// Labels:
//   - endpoint: the upstream route template (e.g. "/users/:uid"), never the
//     concrete path, so parameterized routes stay a single series
//   - status: the upstream HTTP status, or "error" on transport failure
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests proxied to the upstream gRust API.",
	},
	[]string{"endpoint", "status"},
)

// UpstreamRequestDuration measures upstream round-trip time per endpoint.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream gRust API calls.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"endpoint"},
)

// ── Credential metrics ────────────────────────────────────────────────────────

// CredentialValidationsTotal counts credential validation outcomes.
// Label:
//   - result: "valid", "invalid", "mismatch", or "insufficient_power"
var CredentialValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_validations_total",
		Help:      "Total number of credential validation attempts, by outcome.",
	},
	[]string{"result"},
)

// ── Moderation metrics ────────────────────────────────────────────────────────

// ModerationActionsTotal counts successful mutating moderation operations.
// Label:
//   - action: "ban_created", "ban_deleted", or "warn_created"
var ModerationActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_actions_total",
		Help:      "Total number of moderation actions performed through the panel.",
	},
	[]string{"action"},
)
