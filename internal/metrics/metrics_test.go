package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestInitRegistryIdempotent(t *testing.T) {
	first := InitRegistry()
	second := InitRegistry()
	assert.Same(t, first, second)
}

func TestRecordHelpers(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordCompetitionFailed()
		RecordIngestionRun("success", 1.5)
		RecordIngestionRun("error", 0.2)
		ProviderRequestsTotal.WithLabelValues("success").Inc()
		RecordsIngestedTotal.WithLabelValues("fixture").Inc()
		DuplicatesDroppedTotal.Inc()
		SnapshotRecords.Set(42)
	})
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	SnapshotRecords.Set(7)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "super_predictor_snapshot_records")
}
