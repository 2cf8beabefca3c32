package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsApplied  *prometheus.CounterVec
	TransactionsRejected *prometheus.CounterVec
	TransactionErrors    *prometheus.CounterVec
	TransactionAmount    *prometheus.HistogramVec

	// Record stream metrics
	RecordErrors  prometheus.Counter
	RunsCompleted prometheus.Counter
	RunDuration   prometheus.Histogram

	// Account metrics
	AccountsKnown  prometheus.Gauge
	AccountsLocked prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transaction metrics
		TransactionsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txengine_transactions_applied_total",
				Help: "Total number of transactions applied by kind",
			},
			[]string{"kind"},
		),
		TransactionsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txengine_transactions_rejected_total",
				Help: "Total number of transactions dropped without effect, by kind and reason",
			},
			[]string{"kind", "reason"},
		),
		TransactionErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txengine_transaction_errors_total",
				Help: "Total number of transactions that failed to process, by kind",
			},
			[]string{"kind"},
		),
		TransactionAmount: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "txengine_transaction_amount",
				Help:    "Transaction amounts by kind",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),

		// Record stream metrics
		RecordErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "txengine_record_errors_total",
			Help: "Total number of malformed input records",
		}),
		RunsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "txengine_runs_completed_total",
			Help: "Total number of completed processing runs",
		}),
		RunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "txengine_run_duration_seconds",
			Help:    "Duration of processing runs",
			Buckets: prometheus.DefBuckets,
		}),

		// Account metrics
		AccountsKnown: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "txengine_accounts_known",
			Help: "Number of accounts currently known to the engine",
		}),
		AccountsLocked: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "txengine_accounts_locked",
			Help: "Number of accounts currently locked by a chargeback",
		}),
	}
}
