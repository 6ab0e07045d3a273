package commonness

import (
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker/v2"
)

// NewDefaultConfig creates a config with sensible defaults and no backend selected
func NewDefaultConfig() Config {
	return Config{
		Language: DefaultLanguage,
		Model:    openai.GPT4oMini,
		Timeout:  30 * time.Second,
	}
}

// WithFrequencyFile selects a frequency table as the backend
func (c Config) WithFrequencyFile(path string) Config {
	c.FrequencyFile = path
	return c
}

// WithAPIKey selects the OpenAI estimator as the backend
func (c Config) WithAPIKey(apiKey string) Config {
	c.APIKey = apiKey
	return c
}

// WithLanguage sets the language code served by the lookup
func (c Config) WithLanguage(lang string) Config {
	c.Language = lang
	return c
}

// WithCircuitBreaker enables circuit breaker with default settings
func (c Config) WithCircuitBreaker() Config {
	c.EnableCircuitBreaker = true
	c.CircuitBreakerConfig = DefaultCircuitBreakerConfig()
	return c
}

// WithCircuitBreakerConfig enables circuit breaker with custom settings
func (c Config) WithCircuitBreakerConfig(config *CircuitBreakerConfig) Config {
	c.EnableCircuitBreaker = true
	c.CircuitBreakerConfig = config
	return c
}

// WithRetry enables retry with default exponential backoff
func (c Config) WithRetry() Config {
	c.EnableRetry = true
	c.RetryConfig = DefaultRetryConfig()
	return c
}

// WithRetryStrategy enables retry with specified strategy
func (c Config) WithRetryStrategy(strategy RetryStrategy, maxAttempts int) Config {
	c.EnableRetry = true
	c.RetryConfig = &RetryConfig{
		MaxAttempts:  maxAttempts,
		Strategy:     strategy,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
	}
	return c
}

// WithRetryConfig enables retry with custom settings
func (c Config) WithRetryConfig(config *RetryConfig) Config {
	c.EnableRetry = true
	c.RetryConfig = config
	return c
}

// WithModel sets the OpenAI model
func (c Config) WithModel(model string) Config {
	c.Model = model
	return c
}

// WithTimeout sets the per-request timeout
func (c Config) WithTimeout(timeout time.Duration) Config {
	if timeout < 0 {
		panic("timeout must be positive")
	}
	c.Timeout = timeout
	return c
}

// WithMetrics records lookup metrics on m
func (c Config) WithMetrics(m *MetricsRecorder) Config {
	c.Metrics = m
	return c
}

// DefaultCircuitBreakerConfig trips after 5 consecutive failures or a
// failure rate above 60% once 10 requests have been seen.
func DefaultCircuitBreakerConfig() *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		MaxRequests: 10,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures >= 5 ||
				(counts.Requests >= 10 && failureRatio > 0.6)
		},
	}
}

// DefaultRetryConfig retries three times with capped exponential backoff
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:  3,
		Strategy:     RetryStrategyExponential,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
	}
}

// Validate checks if the config is valid
func (c Config) Validate() error {
	if c.APIKey != "" && c.Model != "" && !isValidModel(c.Model) {
		return fmt.Errorf("%w: unsupported model: %s", ErrInvalidConfig, c.Model)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}

	if c.EnableCircuitBreaker && c.CircuitBreakerConfig == nil {
		return fmt.Errorf("%w: circuit breaker enabled but config is nil", ErrInvalidConfig)
	}

	if c.EnableRetry {
		if err := c.RetryConfig.validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}

func (c Config) model() string {
	if c.Model == "" {
		return openai.GPT4oMini
	}
	return c.Model
}

func (c Config) language() string {
	if c.Language == "" {
		return DefaultLanguage
	}
	return c.Language
}

func (r *RetryConfig) validate() error {
	if r == nil {
		return errors.New("retry enabled but config is nil")
	}

	if !isValidRetryStrategy(r.Strategy) {
		return fmt.Errorf("invalid retry strategy: %s", r.Strategy)
	}

	if r.MaxAttempts <= 0 {
		return errors.New("retry MaxAttempts must be positive")
	}

	if r.InitialDelay <= 0 {
		return errors.New("retry InitialDelay must be positive")
	}

	if r.MaxDelay <= 0 {
		return errors.New("retry MaxDelay must be positive")
	}

	return nil
}

// isValidModel checks if the model is supported
func isValidModel(model string) bool {
	validModels := []string{
		openai.GPT4,
		openai.GPT4o,
		openai.GPT4oMini,
		openai.GPT4Turbo,
		openai.GPT3Dot5Turbo,
	}

	for _, valid := range validModels {
		if model == valid {
			return true
		}
	}
	return false
}

// isValidRetryStrategy checks if the retry strategy is valid
func isValidRetryStrategy(strategy RetryStrategy) bool {
	switch strategy {
	case RetryStrategyExponential, RetryStrategyConstant, RetryStrategyFibonacci:
		return true
	default:
		return false
	}
}
