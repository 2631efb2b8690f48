// Package metrics defines all custom Prometheus metrics for the Asksource
// admin API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at init time and
// are exposed on /metrics alongside the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "asksource"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of admin registration attempts, by result.",
	},
	[]string{"result"},
)

// ActivationsTotal counts activation-link consumptions.
// Label:
//   - result: "activated" or "invalid_token"
var ActivationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activations_total",
		Help:      "Total number of account activation attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "not_activated", "disabled", "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// DashboardAggregationDuration measures a full dashboard-stats computation,
// including all fan-out calls to the RAG API.
var DashboardAggregationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dashboard_aggregation_duration_seconds",
		Help:      "Duration of a full dashboard statistics aggregation.",
		Buckets:   prometheus.DefBuckets,
	},
)

// UpstreamErrorsTotal counts failed calls to the external RAG API.
// Label:
//   - endpoint: "projects", "assets", "index_info", "upload", "delete", "push"
var UpstreamErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_errors_total",
		Help:      "Total number of failed RAG API calls, by endpoint.",
	},
	[]string{"endpoint"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts registration emails handed to the SMTP sender.
// Labels:
//   - kind: "activation_request" or "confirmation"
//   - result: "sent" or "failed"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of registration notification emails, by kind and result.",
	},
	[]string{"kind", "result"},
)
