// Package metrics defines all custom Prometheus metrics for the clinic API.
// It is the single source of truth for metric names, labels, and help
// strings. Registration happens at import time via promauto against the
// default registry; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clinic"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuditEntriesTotal counts audit log entries written for inventory and
// supplier mutations.
// Label:
//   - action: the audit action label (e.g. "merchandise_created")
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit log entries written, by action.",
	},
	[]string{"action"},
)

// AppointmentsTotal counts calendar write operations.
// Label:
//   - operation: "create", "update", or "delete"
var AppointmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_total",
		Help:      "Total number of appointment write operations.",
	},
	[]string{"operation"},
)

// BudgetItemsCreatedTotal counts budget line items added across all patients.
var BudgetItemsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "budget_items_created_total",
		Help:      "Total number of budget line items created.",
	},
)
