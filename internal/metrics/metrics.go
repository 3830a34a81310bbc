// Package metrics provides the centralized Prometheus metrics registry
// for the predictor services.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "super_predictor",
		Name:      "provider_requests_total",
		Help:      "Total provider fetches by outcome",
	}, []string{"outcome"})
	CompetitionsFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "super_predictor",
		Name:      "competitions_failed_total",
		Help:      "Total competitions that yielded no records during ingestion",
	})
	RecordsIngestedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "super_predictor",
		Name:      "records_ingested_total",
		Help:      "Total prediction records written by kind",
	}, []string{"kind"})
	DuplicatesDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "super_predictor",
		Name:      "duplicates_dropped_total",
		Help:      "Total records dropped by dedup (last write wins)",
	})
	IngestionRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "super_predictor",
		Name:      "ingestion_runs_total",
		Help:      "Total ingestion runs by outcome",
	}, []string{"outcome"})
)

// Gauge metrics
var (
	SnapshotRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "super_predictor",
		Name:      "snapshot_records",
		Help:      "Records in the last written snapshot",
	})
)

// Histogram metrics
var (
	IngestionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "super_predictor",
		Name:      "ingestion_duration_seconds",
		Help:      "Duration of ingestion runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ProviderRequestsTotal)
		registry.MustRegister(CompetitionsFailedTotal)
		registry.MustRegister(RecordsIngestedTotal)
		registry.MustRegister(DuplicatesDroppedTotal)
		registry.MustRegister(IngestionRunsTotal)

		registry.MustRegister(SnapshotRecords)

		registry.MustRegister(IngestionDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordCompetitionFailed records a competition that contributed nothing.
func RecordCompetitionFailed() {
	CompetitionsFailedTotal.Inc()
}

// RecordIngestionRun records a finished run and its duration.
func RecordIngestionRun(outcome string, durationSeconds float64) {
	IngestionRunsTotal.WithLabelValues(outcome).Inc()
	IngestionDuration.Observe(durationSeconds)
}
