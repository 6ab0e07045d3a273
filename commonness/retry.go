package commonness

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sethvargo/go-retry"
)

// RetryLookup wraps a Lookup with retry logic
type RetryLookup struct {
	lookup  Lookup
	config  *RetryConfig
	metrics *MetricsRecorder
}

// NewRetryLookup creates a new retry wrapper around a Lookup
func NewRetryLookup(lookup Lookup, config *RetryConfig) *RetryLookup {
	if config == nil {
		config = DefaultRetryConfig()
	}

	return &RetryLookup{
		lookup: lookup,
		config: config,
	}
}

// WithRetryMetrics records retries on m
func (w *RetryLookup) WithRetryMetrics(m *MetricsRecorder) *RetryLookup {
	w.metrics = m
	return w
}

// Commonness executes the lookup with retry logic
func (w *RetryLookup) Commonness(ctx context.Context, word, lang string) (float64, error) {
	var lastErr error
	var attempts int

	backoff := w.getBackoffStrategy()
	defer func() {
		w.metrics.RecordRetryAttempts(attempts)
	}()

	for {
		attempts++

		zipf, err := w.lookup.Commonness(ctx, word, lang)
		if err == nil {
			if attempts > 1 {
				slog.Info("Commonness lookup succeeded after retry",
					"word", word,
					"attempts", attempts)
			}
			return zipf, nil
		}

		lastErr = err

		if !IsRetryableError(err) {
			slog.Debug("Non-retryable error, giving up",
				"word", word,
				"error", err,
				"attempts", attempts)
			return 0, err
		}

		if attempts >= w.config.MaxAttempts {
			slog.Warn("Max retry attempts reached",
				"word", word,
				"attempts", attempts,
				"error", lastErr)
			return 0, lastErr
		}

		delay, stop := backoff.Next()
		if stop {
			slog.Warn("Backoff strategy stopped",
				"attempts", attempts,
				"error", lastErr)
			return 0, lastErr
		}

		w.metrics.RecordRetry(classifyError(err))
		slog.Debug("Retrying commonness lookup after delay",
			"word", word,
			"attempt", attempts,
			"delay", delay,
			"error", err)

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// getBackoffStrategy returns the appropriate backoff strategy
func (w *RetryLookup) getBackoffStrategy() retry.Backoff {
	jitter := w.config.InitialDelay / 10

	switch w.config.Strategy {
	case RetryStrategyConstant:
		return retry.WithMaxRetries(
			uint64(w.config.MaxAttempts),
			retry.BackoffFunc(func() (time.Duration, bool) {
				if jitter <= 0 {
					return w.config.InitialDelay, false
				}
				return w.config.InitialDelay + time.Duration(rand.Int63n(int64(jitter))), false
			}),
		)

	case RetryStrategyFibonacci:
		return retry.WithMaxRetries(
			uint64(w.config.MaxAttempts),
			retry.WithCappedDuration(
				w.config.MaxDelay,
				withJitter(jitter, retry.NewFibonacci(w.config.InitialDelay)),
			),
		)

	case RetryStrategyExponential:
		fallthrough
	default:
		return retry.WithMaxRetries(
			uint64(w.config.MaxAttempts),
			retry.WithCappedDuration(
				w.config.MaxDelay,
				withJitter(jitter, retry.NewExponential(w.config.InitialDelay)),
			),
		)
	}
}

// withJitter skips jitter for sub-10ns delays, where WithJitter would panic
func withJitter(jitter time.Duration, next retry.Backoff) retry.Backoff {
	if jitter <= 0 {
		return next
	}
	return retry.WithJitter(jitter, next)
}

// IsRetryableError determines if an error should trigger a retry
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Caller mistakes never succeed on a second attempt
	if errors.Is(err, ErrUnsupportedLanguage) || errors.Is(err, ErrEmptyWord) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 429:
			return true
		case 500, 502, 503, 504:
			return true
		case 400, 401, 403, 404:
			return false
		default:
			return apiErr.HTTPStatusCode >= 500
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	// Malformed model output and unknown (network) errors are worth another try
	return true
}

// CalculateRetryDelay returns the nominal delay before the given retry
// attempt, without jitter.
func CalculateRetryDelay(attempt int, config *RetryConfig) time.Duration {
	if config == nil || attempt < 1 {
		return 0
	}

	var delay time.Duration

	switch config.Strategy {
	case RetryStrategyConstant:
		delay = config.InitialDelay

	case RetryStrategyFibonacci:
		a, b := config.InitialDelay, config.InitialDelay
		for i := 2; i <= attempt; i++ {
			a, b = b, a+b
		}
		delay = b

	case RetryStrategyExponential:
		fallthrough
	default:
		delay = config.InitialDelay << (attempt - 1)
	}

	if delay > config.MaxDelay || delay <= 0 {
		delay = config.MaxDelay
	}

	return delay
}
