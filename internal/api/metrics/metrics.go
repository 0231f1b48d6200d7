// Package metrics defines and registers all custom Prometheus metrics for the
// feedback API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed at GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hrfeedback"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts requests rejected by an auth gate.
// Label:
//   - reason: "missing_token", "invalid_token", "malformed_principal", "revoked", "legacy_rejected" or "error"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth middleware, by reason.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - kind: "administrator" or "employee"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by principal kind and result.",
	},
	[]string{"kind", "result"},
)

var EmployeesProvisionedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employees_provisioned_total",
		Help:      "Total number of employees added by administrators.",
	},
)

// ── Feedback metrics ──────────────────────────────────────────────────────────

// FeedbackSubmittedTotal counts new feedback threads.
// Label:
//   - sender_kind: "administrator" or "employee"
var FeedbackSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_submitted_total",
		Help:      "Total number of feedback threads submitted, by sender kind.",
	},
	[]string{"sender_kind"},
)

// FeedbackTransitionsTotal counts accepted status changes.
// Label:
//   - status: the new status ("reviewed" or "responded")
var FeedbackTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feedback_transitions_total",
		Help:      "Total number of feedback status transitions, by resulting status.",
	},
	[]string{"status"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts notification outcomes.
// Labels:
//   - type: notification type (e.g. "feedback.submitted")
//   - result: "delivered", "failed" or "dropped"
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications, by type and outcome.",
	},
	[]string{"type", "result"},
)

// NotificationQueueDepth tracks the number of notifications waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDeliveryDuration measures how long a single delivery attempt takes.
var NotificationDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_delivery_duration_seconds",
		Help:      "Duration of a notification delivery attempt.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)
