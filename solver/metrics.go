package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder provides methods to record solve metrics.
// A nil or disabled recorder silently drops everything.
type MetricsRecorder struct {
	enabled bool

	solvesTotal           *prometheus.CounterVec
	solveDuration         prometheus.Histogram
	candidatesTotal       prometheus.Counter
	rejectedTotal         *prometheus.CounterVec
	acceptedTotal         prometheus.Counter
	pangramsTotal         prometheus.Counter
	scoreDistribution     prometheus.Histogram
	commonnessErrorsTotal prometheus.Counter
}

// NewMetricsRecorder creates a recorder whose metrics are registered on reg.
// Create one recorder per registry; a nil reg yields a disabled recorder.
func NewMetricsRecorder(reg prometheus.Registerer) *MetricsRecorder {
	if reg == nil {
		return &MetricsRecorder{}
	}

	factory := promauto.With(reg)
	return &MetricsRecorder{
		enabled: true,

		solvesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spellingbee_solves_total",
				Help: "Total number of solve runs by outcome",
			},
			[]string{"status"},
		),

		solveDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "spellingbee_solve_duration_seconds",
				Help:    "Duration of solve runs in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		candidatesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "spellingbee_candidates_scanned_total",
				Help: "Total number of well-formed candidate words scanned",
			},
		),

		rejectedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spellingbee_words_rejected_total",
				Help: "Total number of rejected lines by filter",
			},
			[]string{"reason"},
		),

		acceptedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "spellingbee_words_accepted_total",
				Help: "Total number of words that passed every filter",
			},
		),

		pangramsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "spellingbee_pangrams_found_total",
				Help: "Total number of pangrams found",
			},
		),

		scoreDistribution: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "spellingbee_word_score",
				Help:    "Distribution of accepted word scores",
				Buckets: []float64{1, 5, 6, 7, 8, 9, 10, 12, 14, 17},
			},
		),

		commonnessErrorsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "spellingbee_commonness_errors_total",
				Help: "Total number of failed commonness lookups that left a word unfiltered",
			},
		),
	}
}

func (m *MetricsRecorder) on() bool {
	return m != nil && m.enabled
}

// RecordSolve records a solve outcome
func (m *MetricsRecorder) RecordSolve(status string) {
	if !m.on() {
		return
	}
	m.solvesTotal.WithLabelValues(status).Inc()
}

// RecordSolveDuration records solve duration
func (m *MetricsRecorder) RecordSolveDuration(seconds float64) {
	if !m.on() {
		return
	}
	m.solveDuration.Observe(seconds)
}

// RecordCandidate records a scanned candidate
func (m *MetricsRecorder) RecordCandidate() {
	if !m.on() {
		return
	}
	m.candidatesTotal.Inc()
}

// RecordRejection records a rejected candidate
func (m *MetricsRecorder) RecordRejection(reason string) {
	m.RecordRejections(reason, 1)
}

// RecordRejections records n rejections for the same reason
func (m *MetricsRecorder) RecordRejections(reason string, n int) {
	if !m.on() {
		return
	}
	m.rejectedTotal.WithLabelValues(reason).Add(float64(n))
}

// RecordAccepted records an accepted word
func (m *MetricsRecorder) RecordAccepted(r WordResult) {
	if !m.on() {
		return
	}
	m.acceptedTotal.Inc()
	m.scoreDistribution.Observe(float64(r.Score))
	if r.IsPangram {
		m.pangramsTotal.Inc()
	}
}

// RecordCommonnessError records a lookup failure
func (m *MetricsRecorder) RecordCommonnessError() {
	if !m.on() {
		return
	}
	m.commonnessErrorsTotal.Inc()
}
