package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the license module. Tracks validation
// outcomes, lookup degradations and workflow transitions.
type Metrics struct {
	ValidationRuns     *prometheus.CounterVec
	ValidationDuration prometheus.Histogram
	LookupDegraded     *prometheus.CounterVec
	RequestsCreated    prometheus.Counter
	Transitions        *prometheus.CounterVec
	TransitionDuration prometheus.Histogram
}

// New creates a Metrics instance with all license module metrics registered.
func New() *Metrics {
	return &Metrics{
		ValidationRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ftf_license_validation_runs_total",
			Help: "Validation runs by outcome (valid/invalid)",
		}, []string{"outcome"}),
		ValidationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ftf_license_validation_duration_seconds",
			Help:    "Duration of full validation pipeline runs",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		LookupDegraded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ftf_license_lookup_degraded_total",
			Help: "Collaborator lookups that degraded a validation run, by check",
		}, []string{"check"}),
		RequestsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ftf_license_requests_created_total",
			Help: "Total number of license requests admitted into the workflow",
		}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ftf_license_status_transitions_total",
			Help: "Status transitions by from/to status",
		}, []string{"from", "to"}),
		TransitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ftf_license_transition_duration_seconds",
			Help:    "Duration of workflow transitions including persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementValidation records one validation run outcome.
func (m *Metrics) IncrementValidation(valid bool) {
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	m.ValidationRuns.WithLabelValues(outcome).Inc()
}

// ObserveValidation records the duration of a validation run.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveValidation(start time.Time) {
	m.ValidationDuration.Observe(time.Since(start).Seconds())
}

// IncrementDegraded records one degraded collaborator lookup.
func (m *Metrics) IncrementDegraded(check string) {
	m.LookupDegraded.WithLabelValues(check).Inc()
}

// IncrementRequestCreated records a successfully created request.
func (m *Metrics) IncrementRequestCreated() {
	m.RequestsCreated.Inc()
}

// IncrementTransition records one status transition.
func (m *Metrics) IncrementTransition(from, to string) {
	m.Transitions.WithLabelValues(from, to).Inc()
}

// ObserveTransition records the duration of a transition.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveTransition(start time.Time) {
	m.TransitionDuration.Observe(time.Since(start).Seconds())
}
