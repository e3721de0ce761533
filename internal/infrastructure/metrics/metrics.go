package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iho/ledgerbatch/internal/domain"
)

// Metrics holds all Prometheus metrics of a batch run.
type Metrics struct {
	TransactionsApplied *prometheus.CounterVec
	TransactionsFailed  *prometheus.CounterVec
	AccountsLocked      prometheus.Counter
	BatchDuration       prometheus.Histogram
	RecordsLoaded       prometheus.Gauge
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerbatch_transactions_applied_total",
				Help: "Total transactions applied by type",
			},
			[]string{"type"},
		),
		TransactionsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledgerbatch_transactions_failed_total",
				Help: "Total transactions rejected by type and reason",
			},
			[]string{"type", "reason"},
		),
		AccountsLocked: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledgerbatch_accounts_locked_total",
			Help: "Total accounts locked by a chargeback",
		}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledgerbatch_batch_duration_seconds",
			Help:    "Duration of batch runs",
			Buckets: prometheus.DefBuckets,
		}),
		RecordsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ledgerbatch_records_loaded",
			Help: "Number of transaction records read from input",
		}),
	}
}

// RecordApplied counts a successfully applied record.
func (m *Metrics) RecordApplied(txType domain.TxType) {
	m.TransactionsApplied.WithLabelValues(txType.String()).Inc()
}

// RecordFailed counts a rejected record.
func (m *Metrics) RecordFailed(txType domain.TxType, err error) {
	m.TransactionsFailed.WithLabelValues(txType.String(), domain.FailureReason(err)).Inc()
}

// RecordLocked counts an account that became locked.
func (m *Metrics) RecordLocked() {
	m.AccountsLocked.Inc()
}

// ObserveBatch records how long a batch took since start.
func (m *Metrics) ObserveBatch(start time.Time) {
	m.BatchDuration.Observe(time.Since(start).Seconds())
}

// WriteTextfile writes everything gathered by g to path in the text format
// read by the node_exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
