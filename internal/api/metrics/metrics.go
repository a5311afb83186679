// Package metrics defines and registers the custom Prometheus metrics of the
// catalog API. HTTP request metrics come from echoprometheus in the router;
// this package only holds the domain counters.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Invariant metrics ─────────────────────────────────────────────────────────

// InvariantViolationsTotal counts mutations rejected by a catalog invariant.
// Label:
//   - reason: the reason text shown to the client
var InvariantViolationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invariant_violations_total",
		Help:      "Total number of catalog mutations rejected by an invariant.",
	},
	[]string{"reason"},
)

// MutationsTotal counts successful catalog mutations.
// Labels:
//   - resource: "category" or "product"
//   - action: "create", "update" or "delete"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of successful catalog mutations, by resource and action.",
	},
	[]string{"resource", "action"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// TokenRejectionsTotal counts bearer tokens refused by the auth middleware.
// Label:
//   - reason: "missing", "scheme", "malformed", "signature" or "expired"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected by the auth middleware, by reason.",
	},
	[]string{"reason"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - outcome: "success", "invalid_credentials", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)
