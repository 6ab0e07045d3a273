package commonness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker/v2"
)

// Build creates the lookup selected by cfg.
//
// A frequency table wins over the OpenAI estimator when both are configured.
// When neither is configured Build returns a nil Lookup and a nil error: the
// collaborator is simply unavailable.
func Build(cfg Config) (Lookup, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.FrequencyFile == "" && cfg.APIKey != "" {
		if zipfPromptError != nil {
			return nil, zipfPromptError
		}
		return BuildWithClient(openai.NewClient(cfg.APIKey), cfg)
	}
	return BuildWithClient(nil, cfg)
}

// BuildWithClient is Build with an injected OpenAI client, used in place of
// one created from cfg.APIKey.
func BuildWithClient(client OpenAIClient, cfg Config) (Lookup, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lang := cfg.language()

	if cfg.FrequencyFile != "" {
		t, err := LoadTableFile(cfg.FrequencyFile, lang)
		if err != nil {
			return nil, err
		}
		slog.Info("Using frequency table for commonness",
			"path", cfg.FrequencyFile,
			"lang", lang,
			"words", t.Len())
		return WithMetrics(t, cfg.Metrics), nil
	}

	if client == nil {
		slog.Info("No commonness backend configured")
		return nil, nil
	}

	var lookup Lookup = NewEstimator(client,
		WithModel(cfg.model()),
		WithTimeout(cfg.Timeout),
		WithEstimatorMetrics(cfg.Metrics))

	// Layer 1: retry (innermost)
	if cfg.EnableRetry {
		slog.Info("Enabling retry logic",
			"max_attempts", cfg.RetryConfig.MaxAttempts,
			"strategy", cfg.RetryConfig.Strategy)
		lookup = NewRetryLookup(lookup, cfg.RetryConfig).WithRetryMetrics(cfg.Metrics)
	}

	// Layer 2: circuit breaker (wraps retry)
	if cfg.EnableCircuitBreaker {
		slog.Info("Enabling circuit breaker",
			"max_requests", cfg.CircuitBreakerConfig.MaxRequests,
			"timeout", cfg.CircuitBreakerConfig.Timeout)

		cbConfig := *cfg.CircuitBreakerConfig
		userCallback := cbConfig.OnStateChange
		metrics := cfg.Metrics
		cbConfig.OnStateChange = func(name string, from, to gobreaker.State) {
			metrics.RecordCircuitBreakerState(name, stateToInt(to))
			if to == gobreaker.StateOpen {
				metrics.RecordCircuitBreakerTrip(name)
			}
			if userCallback != nil {
				userCallback(name, from, to)
			}
		}
		lookup = NewCircuitBreakerLookup(lookup, &cbConfig)
	}

	slog.Info("Commonness estimator created",
		"model", cfg.model(),
		"lang", lang,
		"circuit_breaker", cfg.EnableCircuitBreaker,
		"retry", cfg.EnableRetry)

	return WithMetrics(lookup, cfg.Metrics), nil
}

// WithMetrics wraps any Lookup with metrics recording. A nil recorder
// returns lookup unchanged.
func WithMetrics(lookup Lookup, metrics *MetricsRecorder) Lookup {
	if metrics == nil {
		return lookup
	}
	return &metricsLookup{
		lookup:  lookup,
		metrics: metrics,
	}
}

type metricsLookup struct {
	lookup  Lookup
	metrics *MetricsRecorder
}

func (m *metricsLookup) Commonness(ctx context.Context, word, lang string) (float64, error) {
	zipf, err := m.lookup.Commonness(ctx, word, lang)
	if err != nil {
		m.metrics.RecordLookup(classifyError(err))
		return zipf, err
	}
	m.metrics.RecordLookup("success")
	m.metrics.RecordZipf(zipf)
	return zipf, nil
}

// classifyError returns error type for metrics
func classifyError(err error) string {
	if err == nil {
		return "none"
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == 429:
			return "rate_limit"
		case apiErr.HTTPStatusCode >= 500:
			return "server_error"
		case apiErr.HTTPStatusCode >= 400:
			return "client_error"
		default:
			return "api_error"
		}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, gobreaker.ErrOpenState):
		return "circuit_open"
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_half_open"
	case errors.Is(err, ErrUnsupportedLanguage):
		return "unsupported_language"
	case errors.Is(err, ErrInvalidEstimate):
		return "invalid_estimate"
	}

	return "unknown"
}

// String describes the configured backend for logs
func (c Config) String() string {
	switch {
	case c.FrequencyFile != "":
		return fmt.Sprintf("table(%s)", c.FrequencyFile)
	case c.APIKey != "":
		return fmt.Sprintf("openai(%s)", c.model())
	default:
		return "none"
	}
}
