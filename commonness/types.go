package commonness

import (
	"context"
	"errors"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker/v2"
)

// Lookup reports how common a word is in everyday language.
//
// Scores use the Zipf scale: 0 for unknown words, roughly 1 for words seen once
// per hundred million words of text, and up to about 8 for the most frequent
// function words. Higher means more common.
type Lookup interface {
	Commonness(ctx context.Context, word, lang string) (float64, error)
}

// Func adapts a plain frequency function to the Lookup interface
type Func func(word, lang string) float64

// Commonness calls f and never fails
func (f Func) Commonness(_ context.Context, word, lang string) (float64, error) {
	return f(word, lang), nil
}

// OpenAIClient defines the interface for interacting with OpenAI API
type OpenAIClient interface {
	CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config holds the configuration for building a commonness lookup
type Config struct {
	FrequencyFile        string                // Word frequency table ("word count" per line); takes precedence over APIKey
	Language             string                // Language code served by the lookup
	APIKey               string                // OpenAI API key for the LLM estimator
	Model                string                // OpenAI model to use
	Timeout              time.Duration         // Per-request timeout for the estimator (0 = none)
	EnableCircuitBreaker bool                  // Enable circuit breaker pattern around the estimator
	EnableRetry          bool                  // Enable retry with backoff around the estimator
	CircuitBreakerConfig *CircuitBreakerConfig // Circuit breaker configuration
	RetryConfig          *RetryConfig          // Retry configuration
	Metrics              *MetricsRecorder      // Optional metrics recorder
}

// CircuitBreakerConfig holds circuit breaker settings
type CircuitBreakerConfig struct {
	MaxRequests   uint32                                      // Max requests in half-open state
	Interval      time.Duration                               // Interval for closed state
	Timeout       time.Duration                               // Timeout for open state
	ReadyToTrip   func(counts gobreaker.Counts) bool          // Custom trip condition
	OnStateChange func(name string, from, to gobreaker.State) // State change callback
}

// RetryConfig holds retry settings
type RetryConfig struct {
	MaxAttempts  int           // Maximum number of attempts, including the first
	Strategy     RetryStrategy // Backoff strategy to use
	InitialDelay time.Duration // Initial delay between retries
	MaxDelay     time.Duration // Maximum delay between retries
}

// RetryStrategy defines the backoff strategy for retries
type RetryStrategy string

const (
	RetryStrategyExponential RetryStrategy = "exponential"
	RetryStrategyConstant    RetryStrategy = "constant"
	RetryStrategyFibonacci   RetryStrategy = "fibonacci"

	// DefaultLanguage is the language code used when none is configured
	DefaultLanguage = "en"

	// Zipf scale bounds accepted from estimators
	MinZipf = 0.0
	MaxZipf = 8.0
)

// Error definitions
var (
	ErrMissingAPIKey       = errors.New("OpenAI API key is required")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrEmptyWord           = errors.New("word cannot be empty")
	ErrInvalidEstimate     = errors.New("invalid commonness estimate")
)

// Internal response type for JSON parsing
type estimateResponse struct {
	Word string  `json:"word"`
	Zipf float64 `json:"zipf"`
}
