// Package metrics exposes Prometheus collectors for estimate activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var EstimateSaves = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "billing",
	Subsystem: "estimate",
	Name:      "saves_total",
	Help:      "Estimates persisted, by operation (create, update, status).",
}, []string{"operation"})

var EstimateApprovalsRevoked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "billing",
	Subsystem: "estimate",
	Name:      "approvals_revoked_total",
	Help:      "Approved estimates demoted to needs_reapproval by an edit.",
})

var EstimateStatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "billing",
	Subsystem: "estimate",
	Name:      "status_transitions_total",
	Help:      "Explicit estimate status transitions.",
}, []string{"from", "to"})

var EstimateTotalAmount = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "billing",
	Subsystem: "estimate",
	Name:      "total_amount",
	Help:      "Distribution of estimate totals at save time.",
	Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
})

var EventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "billing",
	Subsystem: "events",
	Name:      "publish_failures_total",
	Help:      "Audit events that could not be published to Kafka.",
})
