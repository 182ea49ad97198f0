package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the validation engine. Owner kind is
// "account" or "tax_year"; violation kind follows the violation taxonomy.
type Metrics struct {
	ValidationsTotal   *prometheus.CounterVec
	ViolationsTotal    *prometheus.CounterVec
	ValidationDuration prometheus.Histogram
	AttributesSet      *prometheus.CounterVec
}

// New creates a Metrics instance with all engine metrics registered on the
// default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the engine metrics on the given registerer. Tests pass a
// fresh registry to avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ValidationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finattr_validations_total",
			Help: "Total validation passes by owner kind",
		}, []string{"owner_kind"}),
		ViolationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finattr_violations_total",
			Help: "Total validation findings by violation kind",
		}, []string{"kind"}),
		ValidationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "finattr_validation_duration_seconds",
			Help:    "Duration of full validation passes",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		AttributesSet: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "finattr_attributes_set_total",
			Help: "Total attribute writes by owner kind",
		}, []string{"owner_kind"}),
	}
}

// ObserveValidation records one completed validation pass.
func (m *Metrics) ObserveValidation(ownerKind string, start time.Time) {
	m.ValidationsTotal.WithLabelValues(ownerKind).Inc()
	m.ValidationDuration.Observe(time.Since(start).Seconds())
}

// IncViolation records one validation finding.
func (m *Metrics) IncViolation(kind string) {
	m.ViolationsTotal.WithLabelValues(kind).Inc()
}

// IncAttributeSet records one attribute write.
func (m *Metrics) IncAttributeSet(ownerKind string) {
	m.AttributesSet.WithLabelValues(ownerKind).Inc()
}
