// Package metrics exports engine and tracker counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/julianstephens/levelup/internal/constants"
)

// Evaluation outcomes reported by the engine
const (
	OutcomeHarder       = "harder"
	OutcomeEasier       = "easier"
	OutcomeFlow         = "flow"
	OutcomeCooldown     = "cooldown"
	OutcomeNoHabits     = "no_habits"
	OutcomeInsufficient = "insufficient_data"
	OutcomeNoCandidates = "no_candidates"
	OutcomeError        = "error"
)

// Metrics holds a private registry so several instances can coexist in tests.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	evaluations        *prometheus.CounterVec
	evaluationLatency  prometheus.Histogram
	willpower          prometheus.Histogram
	planDifficulty     prometheus.Histogram
	suggestionsApplied *prometheus.CounterVec
	dismissals         prometheus.Counter
	completions        prometheus.Counter
}

// Config configures the exporter.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for the evaluation latency histogram (in seconds)
	LatencyBuckets []float64
}

func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}
}

func New(cfg Config) *Metrics {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	scoreBuckets := prometheus.LinearBuckets(0, 10, 11)

	m := &Metrics{
		registry: registry,
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: constants.AppName,
				Subsystem: "engine",
				Name:      "evaluations_total",
				Help:      "Plan evaluations by outcome",
			},
			[]string{"outcome"},
		),
		evaluationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: constants.AppName,
			Subsystem: "engine",
			Name:      "evaluation_seconds",
			Help:      "Plan evaluation latency in seconds",
			Buckets:   cfg.LatencyBuckets,
		}),
		willpower: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: constants.AppName,
			Subsystem: "engine",
			Name:      "willpower",
			Help:      "Distribution of estimated willpower scores",
			Buckets:   scoreBuckets,
		}),
		planDifficulty: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: constants.AppName,
			Subsystem: "engine",
			Name:      "plan_difficulty",
			Help:      "Distribution of mean effective plan difficulty",
			Buckets:   prometheus.LinearBuckets(0, 10, 14),
		}),
		suggestionsApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: constants.AppName,
				Subsystem: "lifecycle",
				Name:      "suggestions_applied_total",
				Help:      "Suggestions applied by direction",
			},
			[]string{"direction"},
		),
		dismissals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: constants.AppName,
			Subsystem: "lifecycle",
			Name:      "suggestions_dismissed_total",
			Help:      "Suggestions dismissed",
		}),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: constants.AppName,
			Subsystem: "tracker",
			Name:      "completions_total",
			Help:      "Habit completions recorded",
		}),
	}

	registry.MustRegister(
		m.evaluations,
		m.evaluationLatency,
		m.willpower,
		m.planDifficulty,
		m.suggestionsApplied,
		m.dismissals,
		m.completions,
	)
	return m
}

// RecordEvaluation counts one EvaluatePlan call.
func (m *Metrics) RecordEvaluation(outcome string, latency time.Duration) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(outcome).Inc()
	m.evaluationLatency.Observe(latency.Seconds())
}

// RecordEstimate observes a persisted willpower score and the plan it was measured against.
func (m *Metrics) RecordEstimate(willpower int, planDifficulty float64) {
	if m == nil {
		return
	}
	m.willpower.Observe(float64(willpower))
	m.planDifficulty.Observe(planDifficulty)
}

func (m *Metrics) RecordApplied(direction string) {
	if m == nil {
		return
	}
	m.suggestionsApplied.WithLabelValues(direction).Inc()
}

func (m *Metrics) RecordDismissal() {
	if m == nil {
		return
	}
	m.dismissals.Inc()
}

func (m *Metrics) RecordCompletion() {
	if m == nil {
		return
	}
	m.completions.Inc()
}

// Handler returns the HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
