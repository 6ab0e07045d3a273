package commonness

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRecorder provides methods to record lookup metrics.
// A nil or disabled recorder silently drops everything.
type MetricsRecorder struct {
	enabled bool

	lookupsTotal        *prometheus.CounterVec
	zipfDistribution    prometheus.Histogram
	apiCallDuration     *prometheus.HistogramVec
	apiTokensUsed       *prometheus.CounterVec
	retryTotal          *prometheus.CounterVec
	retryAttempts       prometheus.Histogram
	circuitBreakerState *prometheus.GaugeVec
	circuitBreakerTrips *prometheus.CounterVec
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

		lookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spellingbee_commonness_lookups_total",
				Help: "Total number of commonness lookups by outcome",
			},
			[]string{"status"},
		),

		zipfDistribution: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "spellingbee_commonness_zipf",
				Help:    "Distribution of returned Zipf frequencies",
				Buckets: []float64{0, 1, 2, 3, 3.5, 4, 5, 6, 7, 8},
			},
		),

		apiCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "spellingbee_commonness_api_call_duration_seconds",
				Help:    "Duration of API calls to OpenAI",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),

		apiTokensUsed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spellingbee_commonness_api_tokens_used_total",
				Help: "Total number of tokens used in API calls",
			},
			[]string{"type"}, // prompt, completion
		),

		retryTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spellingbee_commonness_retry_total",
				Help: "Total number of retries by reason",
			},
			[]string{"reason"},
		),

		retryAttempts: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "spellingbee_commonness_retry_attempts",
				Help:    "Number of attempts per lookup",
				Buckets: []float64{1, 2, 3, 4, 5},
			},
		),

		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "spellingbee_commonness_circuit_breaker_state",
				Help: "Current state of circuit breaker (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),

		circuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spellingbee_commonness_circuit_breaker_trips_total",
				Help: "Total number of circuit breaker trips",
			},
			[]string{"name"},
		),
	}
}

func (m *MetricsRecorder) on() bool {
	return m != nil && m.enabled
}

// RecordLookup records a lookup outcome
func (m *MetricsRecorder) RecordLookup(status string) {
	if !m.on() {
		return
	}
	m.lookupsTotal.WithLabelValues(status).Inc()
}

// RecordZipf records a returned Zipf value
func (m *MetricsRecorder) RecordZipf(zipf float64) {
	if !m.on() {
		return
	}
	m.zipfDistribution.Observe(zipf)
}

// RecordAPICall records an API call duration
func (m *MetricsRecorder) RecordAPICall(status string, seconds float64) {
	if !m.on() {
		return
	}
	m.apiCallDuration.WithLabelValues(status).Observe(seconds)
}

// RecordTokensUsed records tokens used
func (m *MetricsRecorder) RecordTokensUsed(tokenType string, count int) {
	if !m.on() {
		return
	}
	m.apiTokensUsed.WithLabelValues(tokenType).Add(float64(count))
}

// RecordRetry records a retry
func (m *MetricsRecorder) RecordRetry(reason string) {
	if !m.on() {
		return
	}
	m.retryTotal.WithLabelValues(reason).Inc()
}

// RecordRetryAttempts records the number of attempts a lookup took
func (m *MetricsRecorder) RecordRetryAttempts(attempts int) {
	if !m.on() {
		return
	}
	m.retryAttempts.Observe(float64(attempts))
}

// RecordCircuitBreakerState records circuit breaker state
func (m *MetricsRecorder) RecordCircuitBreakerState(name string, state int) {
	if !m.on() {
		return
	}
	m.circuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *MetricsRecorder) RecordCircuitBreakerTrip(name string) {
	if !m.on() {
		return
	}
	m.circuitBreakerTrips.WithLabelValues(name).Inc()
}
