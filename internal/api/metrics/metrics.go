// Package metrics defines and registers all custom Prometheus metrics for
// the intake portal gateway. It is the single source of truth for metric
// names, labels, and help strings. Metrics register with the default
// registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "intake"

// SubmissionsTotal counts public form submissions by outcome.
// Label:
//   - outcome: "accepted", "duplicate", "rejected", "validation_failed",
//     "backend_unavailable"
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of intake form submissions, by outcome.",
	},
	[]string{"outcome"},
)

// DashboardLoadsTotal counts admin dashboard loads.
// Label:
//   - result: "full" (both sections loaded), "partial" (one section
//     failed), "failed" (no section loaded)
var DashboardLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dashboard_loads_total",
		Help:      "Total number of admin dashboard loads, by result.",
	},
	[]string{"result"},
)

// ExportsTotal counts CSV export requests.
// Label:
//   - result: "ok" or "error"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of CSV export requests, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts admin login attempts seen by the gateway.
// Label:
//   - result: "ok" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

// BackendRequestDuration measures outgoing calls to the intake backend API.
// Labels:
//   - endpoint: logical endpoint name ("submit", "login", "list_clients",
//     "stats", "export")
//   - status: "ok" or "error"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the intake backend API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "status"},
)
