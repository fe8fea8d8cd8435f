// Package metrics defines the custom Prometheus metrics for the pharmacy
// back-office API. It is the single source of truth for metric names, labels,
// and help strings. All metrics register with the default registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pharmacy"

// ── Sale metrics ──────────────────────────────────────────────────────────────

// SalesRecordedTotal counts sales that committed successfully.
var SalesRecordedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_recorded_total",
		Help:      "Total number of sales committed.",
	},
)

// SalesFailedTotal counts rejected sale requests.
// Label:
//   - reason: "invalid_request", "not_found", "insufficient_stock", "storage_error"
var SalesFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_failed_total",
		Help:      "Total number of sale requests that failed, by reason.",
	},
	[]string{"reason"},
)

// SaleProcessingDuration measures the end-to-end sale transaction time,
// including any wait on the product row lock.
var SaleProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sale_processing_duration_seconds",
		Help:      "Duration of sale processing from request to commit or rollback.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// LowStockSalesTotal counts committed sales that left the product at or below
// the low-stock threshold.
var LowStockSalesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "low_stock_sales_total",
		Help:      "Total number of sales that left the product flagged low-stock.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
