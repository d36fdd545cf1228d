package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	FlightsReconciled prometheus.Counter
	FlightsArchived   prometheus.Counter
	ActiveFlights     prometheus.Gauge
	ProviderCalls     *prometheus.CounterVec
	NotificationsSent *prometheus.CounterVec
	PassDuration      prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		FlightsReconciled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_reconciled_total",
			Help:      "The total number of flights processed by reconciliation passes",
		}),
		FlightsArchived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_archived_total",
			Help:      "The total number of flights moved to the archive",
		}),
		ActiveFlights: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_flights",
			Help:      "The number of flights in the active set after the last pass",
		}),
		ProviderCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "The total number of flight data provider calls",
		}, []string{"provider", "window"}),
		NotificationsSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "The total number of notifications handed to the push gateway",
		}, []string{"channel"}),
		PassDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Time taken by a reconciliation pass",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
