package metrics_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efactura/internal/metrics"
)

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New()

	m.IncrementDocument(metrics.OutcomeGenerated)
	m.IncrementDocument(metrics.OutcomeGenerated)
	m.IncrementDocument(metrics.OutcomeInvalid)
	m.IncrementValidationFailure("supplier.address.city")
	m.AddWarnings(3)
	m.AddWarnings(0)
	m.ObserveGenerateLatency(2 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Documents.WithLabelValues(metrics.OutcomeGenerated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Documents.WithLabelValues(metrics.OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("supplier.address.city")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Warnings))
}

func TestMetrics_ValidationFailureLineIndexes(t *testing.T) {
	m := metrics.New()

	for i := 0; i < 50; i++ {
		m.IncrementValidationFailure(fmt.Sprintf("lines[%d].name", i))
	}
	m.IncrementValidationFailure("lines[3].quantity")

	assert.Equal(t, 2, testutil.CollectAndCount(m.ValidationFailures))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("lines[].name")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("lines[].quantity")))
}

func TestFieldLabel(t *testing.T) {
	tests := []struct {
		field    string
		expected string
	}{
		{"number", "number"},
		{"supplier.address.city", "supplier.address.city"},
		{"lines[0].name", "lines[].name"},
		{"lines[1234].taxPercent", "lines[].taxPercent"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.expected, metrics.FieldLabel(tt.field))
		})
	}
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := metrics.New()
	b := metrics.New()

	a.IncrementDocument(metrics.OutcomeFailed)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Documents.WithLabelValues(metrics.OutcomeFailed)))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics
	m.IncrementDocument(metrics.OutcomeGenerated)
	m.IncrementValidationFailure("number")
	m.AddWarnings(1)
	m.ObserveGenerateLatency(time.Second)
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.New()
	m.IncrementDocument(metrics.OutcomeGenerated)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `efactura_documents_total{outcome="generated"} 1`)
}
