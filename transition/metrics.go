package transition

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts handled transition events by outcome.
type Metrics struct {
	Events         *prometheus.CounterVec
	HandleDuration prometheus.Histogram
	Panics         prometheus.Counter
}

// NewMetrics creates the transition metrics and registers them with reg.
// A nil reg uses the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Events: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "georemind_transition_events_total",
			Help: "Total number of geofence transition events by outcome",
		}, []string{"outcome"}),
		HandleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "georemind_transition_handle_duration_seconds",
			Help:    "Duration of handling one transition event (lookup and notification)",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		Panics: factory.NewCounter(prometheus.CounterOpts{
			Name: "georemind_transition_panics_total",
			Help: "Total number of recovered panics in transition tasks",
		}),
	}
}

// ObserveOutcome records one handled event. Call with time.Now() at the start
// of handling.
func (m *Metrics) ObserveOutcome(outcome Outcome, start time.Time) {
	if m == nil {
		return
	}
	m.Events.WithLabelValues(string(outcome)).Inc()
	m.HandleDuration.Observe(time.Since(start).Seconds())
}

// IncrementPanics records a recovered task panic.
func (m *Metrics) IncrementPanics() {
	if m == nil {
		return
	}
	m.Panics.Inc()
}
