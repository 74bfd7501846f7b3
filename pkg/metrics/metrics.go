package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestDuration observes request latency by route and status
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fingerpay",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// TransactionsTotal counts ledger transitions by type and resulting status
	TransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fingerpay",
		Subsystem: "ledger",
		Name:      "transactions_total",
		Help:      "Transactions by type and status.",
	}, []string{"type", "status"})

	// TransactionVolume accumulates completed transaction amounts
	TransactionVolume = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fingerpay",
		Subsystem: "ledger",
		Name:      "transaction_volume_total",
		Help:      "Completed transaction volume by type.",
	}, []string{"type"})

	// PanicAlertsTotal counts panic-finger activations
	PanicAlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fingerpay",
		Subsystem: "biometric",
		Name:      "panic_alerts_total",
		Help:      "Panic finger activations.",
	})

	// BiometricFailuresTotal counts failed fingerprint verifications
	BiometricFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fingerpay",
		Subsystem: "biometric",
		Name:      "verification_failures_total",
		Help:      "Failed fingerprint verifications.",
	})
)

// Handler exposes the Prometheus scrape endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
