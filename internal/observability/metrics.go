package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	transactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tollctl",
			Subsystem: "toll",
			Name:      "transactions_total",
			Help:      "Total toll transactions handled.",
		},
		[]string{"type", "result"},
	)
	transactionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tollctl",
			Subsystem: "toll",
			Name:      "transaction_duration_seconds",
			Help:      "Toll transaction handling duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"type", "result"},
	)
	feesCollected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tollctl",
			Subsystem: "toll",
			Name:      "fees_collected_total",
			Help:      "Total fees collected from completed trips.",
		},
	)
	vehiclesOnHighway = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tollctl",
			Subsystem: "toll",
			Name:      "vehicles_on_highway",
			Help:      "Vehicles currently on the highway.",
		},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tollctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests on the admin surface.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tollctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Admin HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			transactions, transactionDuration, feesCollected, vehiclesOnHighway,
			httpRequests, httpDuration,
		)
	})
}

func RecordTransaction(txType, result string, duration time.Duration) {
	RegisterMetrics()
	transactions.WithLabelValues(txType, result).Inc()
	transactionDuration.WithLabelValues(txType, result).Observe(duration.Seconds())
}

func RecordFee(fee float64) {
	RegisterMetrics()
	feesCollected.Add(fee)
}

func SetVehiclesOnHighway(n int) {
	RegisterMetrics()
	vehiclesOnHighway.Set(float64(n))
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}
