// Package metrics defines and registers all custom Prometheus metrics for the
// inventory API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ItemsCreatedTotal counts newly recorded items.
// Label:
//   - parent_label: "physical" or "digital"
var ItemsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_created_total",
		Help:      "Total number of items recorded, by top-level domain.",
	},
	[]string{"parent_label"},
)

// ItemsDeletedTotal counts permanently removed items.
var ItemsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_deleted_total",
		Help:      "Total number of items permanently deleted.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccountsRegisteredTotal counts successful registrations.
var AccountsRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts registered.",
	},
)

// ExportsTotal counts CSV backup downloads.
var ExportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of CSV backup exports served.",
	},
)

// ConfirmArmedTotal counts destructive operations entering the armed state.
// Label:
//   - kind: "item", "category", or "account"
var ConfirmArmedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confirm_armed_total",
		Help:      "Total number of destructive operations armed for confirmation.",
	},
	[]string{"kind"},
)
