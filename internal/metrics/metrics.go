package metrics

import (
	"net/http"
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Document outcomes
const (
	OutcomeGenerated = "generated"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
)

// Metrics counts generated documents. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Documents by outcome: generated, invalid, failed
	Documents *prometheus.CounterVec

	// Validation failures by input field
	ValidationFailures *prometheus.CounterVec

	// Soft warnings raised while assembling
	Warnings prometheus.Counter

	GenerateLatency prometheus.Histogram
}

// New creates metrics registered on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Documents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "efactura_documents_total",
			Help: "Invoice documents processed by outcome",
		}, []string{"outcome"}),

		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "efactura_validation_failures_total",
			Help: "Structural validation failures by input field",
		}, []string{"field"}),

		Warnings: f.NewCounter(prometheus.CounterOpts{
			Name: "efactura_assembly_warnings_total",
			Help: "Identifiers and addresses passed through unresolved",
		}),

		GenerateLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "efactura_generate_duration_seconds",
			Help:    "Duration of document generation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

// IncrementDocument records a document outcome
func (m *Metrics) IncrementDocument(outcome string) {
	if m != nil {
		m.Documents.WithLabelValues(outcome).Inc()
	}
}

var lineIndex = regexp.MustCompile(`\[\d+\]`)

// FieldLabel drops line indexes from a field path so the label set stays
// bounded: lines[7].name becomes lines[].name.
func FieldLabel(field string) string {
	return lineIndex.ReplaceAllString(field, "[]")
}

// IncrementValidationFailure records a failed structural check
func (m *Metrics) IncrementValidationFailure(field string) {
	if m != nil {
		m.ValidationFailures.WithLabelValues(FieldLabel(field)).Inc()
	}
}

// AddWarnings records soft warnings
func (m *Metrics) AddWarnings(n int) {
	if m != nil && n > 0 {
		m.Warnings.Add(float64(n))
	}
}

// ObserveGenerateLatency records the duration of one generation
func (m *Metrics) ObserveGenerateLatency(d time.Duration) {
	if m != nil {
		m.GenerateLatency.Observe(d.Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
