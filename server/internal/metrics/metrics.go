package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Metric family names.
const (
	AssessmentsTotal        = "wingcheck_assessments_total"
	ValidationFailuresTotal = "wingcheck_validation_failures_total"
	AssessmentDuration      = "wingcheck_assessment_duration_seconds"
)

// Metrics records assessment activity on a dedicated registry, so tests and
// multiple servers in one process never collide on the default registry.
type Metrics struct {
	reg         *prometheus.Registry
	assessments *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New creates the collectors and registers them, along with the Go runtime
// collector, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)
	return &Metrics{
		reg: reg,
		assessments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: AssessmentsTotal,
				Help: "Total number of assessments computed",
			},
			[]string{"kind", "outcome"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: ValidationFailuresTotal,
				Help: "Total number of requests rejected for invalid input",
			},
			[]string{"kind"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    AssessmentDuration,
				Help:    "Time taken to compute an assessment",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"kind"},
		),
	}
}

// Observe records one computed assessment.
func (m *Metrics) Observe(kind, outcome string, took time.Duration) {
	m.assessments.WithLabelValues(kind, outcome).Inc()
	m.duration.WithLabelValues(kind).Observe(took.Seconds())
}

// ValidationFailed records one rejected request.
func (m *Metrics) ValidationFailed(kind string) {
	m.failures.WithLabelValues(kind).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Totals is a point-in-time readback of the counters.
type Totals struct {
	Assessments        float64            `json:"assessments"`
	ValidationFailures float64            `json:"validation_failures"`
	ByKind             map[string]float64 `json:"by_kind"`
}

// Totals gathers the registry and sums the counter families.
func (m *Metrics) Totals() (Totals, error) {
	mfs, err := m.reg.Gather()
	if err != nil {
		return Totals{}, fmt.Errorf("metrics: gather: %w", err)
	}
	t := Totals{ByKind: map[string]float64{}}
	for _, mf := range mfs {
		switch mf.GetName() {
		case AssessmentsTotal:
			t.Assessments = sumFamily(mf)
			for _, metric := range mf.GetMetric() {
				t.ByKind[label(metric, "kind")] += metric.GetCounter().GetValue()
			}
		case ValidationFailuresTotal:
			t.ValidationFailures = sumFamily(mf)
		}
	}
	return t, nil
}

// sumFamily adds up all counter, gauge, or untyped values in a MetricFamily.
// Returns 0 if mf is nil.
func sumFamily(mf *dto.MetricFamily) float64 {
	if mf == nil {
		return 0
	}
	var total float64
	for _, m := range mf.GetMetric() {
		switch {
		case m.Counter != nil:
			total += m.Counter.GetValue()
		case m.Gauge != nil:
			total += m.Gauge.GetValue()
		case m.Untyped != nil:
			total += m.Untyped.GetValue()
		}
	}
	return total
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
