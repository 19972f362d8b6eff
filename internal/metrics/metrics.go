// Package metrics exposes Prometheus counters for the points workflow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TransactionsSubmitted counts new points requests by type.
var TransactionsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "rewards",
	Name:      "transactions_submitted_total",
	Help:      "Points requests created, by transaction type.",
}, []string{"type"})

// TransactionTransitions counts applied status changes.
var TransactionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "rewards",
	Name:      "transaction_transitions_total",
	Help:      "Applied transaction status transitions.",
}, []string{"type", "from", "to"})

// TransitionFailures counts refused transitions by reason
// (invalid_transition, stale_state, forbidden, insufficient_points).
var TransitionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "rewards",
	Name:      "transition_failures_total",
	Help:      "Refused workflow operations, by reason.",
}, []string{"reason"})

// PointsMoved sums points credited or debited, by ledger entry type.
var PointsMoved = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "rewards",
	Name:      "points_moved_total",
	Help:      "Absolute points moved through the ledger, by entry type.",
}, []string{"entry_type"})
