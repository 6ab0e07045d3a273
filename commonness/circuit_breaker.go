package commonness

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker/v2"
)

// CircuitBreakerLookup wraps a Lookup with circuit breaker functionality
type CircuitBreakerLookup struct {
	lookup Lookup
	cb     *gobreaker.CircuitBreaker[float64]
}

// NewCircuitBreakerLookup creates a new circuit breaker wrapper around a Lookup
func NewCircuitBreakerLookup(lookup Lookup, config *CircuitBreakerConfig) *CircuitBreakerLookup {
	if config == nil {
		config = DefaultCircuitBreakerConfig()
	}

	settings := gobreaker.Settings{
		Name:        "commonness-lookup",
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: config.ReadyToTrip,
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())

			if config.OnStateChange != nil {
				config.OnStateChange(name, from, to)
			}
		},
		IsSuccessful: func(err error) bool {
			// Rate limits, timeouts and caller mistakes say nothing about backend health
			return err == nil || !ShouldTripCircuit(err)
		},
	}

	return &CircuitBreakerLookup{
		lookup: lookup,
		cb:     gobreaker.NewCircuitBreaker[float64](settings),
	}
}

// Commonness executes the lookup through the circuit breaker
func (w *CircuitBreakerLookup) Commonness(ctx context.Context, word, lang string) (float64, error) {
	zipf, err := w.cb.Execute(func() (float64, error) {
		return w.lookup.Commonness(ctx, word, lang)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Debug("Circuit breaker is open, lookup rejected",
				"word", word)
		} else if errors.Is(err, gobreaker.ErrTooManyRequests) {
			slog.Debug("Circuit breaker in half-open state, too many requests",
				"word", word)
		} else {
			slog.Debug("Lookup failed through circuit breaker",
				"word", word,
				"error", err,
				"should_trip", ShouldTripCircuit(err))
		}
	}

	return zipf, err
}

// State returns the current state of the circuit breaker
func (w *CircuitBreakerLookup) State() gobreaker.State {
	return w.cb.State()
}

// Counts returns the current counts of the circuit breaker
func (w *CircuitBreakerLookup) Counts() gobreaker.Counts {
	return w.cb.Counts()
}

// ShouldTripCircuit determines if an error should cause the circuit to trip
func ShouldTripCircuit(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrUnsupportedLanguage) || errors.Is(err, ErrEmptyWord) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 429:
			return false
		case 401, 403:
			return true
		default:
			return apiErr.HTTPStatusCode >= 400
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	return true
}

// Combine wraps lookup with retry (inner layer) and a circuit breaker (outer layer)
func Combine(lookup Lookup, retryConfig *RetryConfig, cbConfig *CircuitBreakerConfig) Lookup {
	withRetry := NewRetryLookup(lookup, retryConfig)
	return NewCircuitBreakerLookup(withRetry, cbConfig)
}

// stateToInt converts circuit breaker state to int for metrics
func stateToInt(state gobreaker.State) int {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
