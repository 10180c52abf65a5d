// Package metrics defines and registers all custom Prometheus metrics for the
// task tracker API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init and
// are served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

const namespace = "tracker"

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts task creations.
// Label:
//   - result: "created" or "replayed" (served from an Idempotency-Key)
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of task create requests, by result.",
	},
	[]string{"result"},
)

// TaskStatusUpdatesTotal counts updates that set a status.
// Label:
//   - status: "completed" or "pending", see StatusLabel
var TaskStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_status_updates_total",
		Help:      "Total number of task updates that set a status.",
	},
	[]string{"status"},
)

// StatusLabel folds a free-form task status into the status label values.
func StatusLabel(status string) string {
	if status == domain.StatusCompleted {
		return "completed"
	}
	return "pending"
}

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - operation: "signup" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityProcessedTotal counts activity records persisted.
// Label:
//   - action: "created", "updated" or "deleted"
var ActivityProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_processed_total",
		Help:      "Total number of task activity records persisted.",
	},
	[]string{"action"},
)

// ActivityErrorsTotal counts activity records that failed to persist.
var ActivityErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of task activity records that failed processing.",
	},
)

// ActivityQueueDepth tracks the records waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity records pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityProcessingDuration measures how long one record takes to persist.
var ActivityProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
