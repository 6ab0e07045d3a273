package commonness_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sashabaranov/go-openai"

	"github.com/JohnPlummer/spelling-bee/commonness"
)

var _ = Describe("Config", func() {
	Describe("NewDefaultConfig", func() {
		It("should select no backend", func() {
			cfg := commonness.NewDefaultConfig()
			Expect(cfg.Language).To(Equal("en"))
			Expect(cfg.Model).To(Equal(openai.GPT4oMini))
			Expect(cfg.Timeout).To(Equal(30 * time.Second))
			Expect(cfg.FrequencyFile).To(BeEmpty())
			Expect(cfg.APIKey).To(BeEmpty())
			Expect(cfg.EnableRetry).To(BeFalse())
			Expect(cfg.EnableCircuitBreaker).To(BeFalse())
			Expect(cfg.Validate()).To(Succeed())
			Expect(cfg.String()).To(Equal("none"))
		})
	})

	Describe("builders", func() {
		var cfg commonness.Config

		BeforeEach(func() {
			cfg = commonness.NewDefaultConfig()
		})

		It("should select backends", func() {
			Expect(cfg.WithFrequencyFile("freq.txt").String()).To(Equal("table(freq.txt)"))
			Expect(cfg.WithAPIKey("sk-test").String()).To(Equal("openai(gpt-4o-mini)"))
			Expect(cfg.WithAPIKey("sk-test").WithFrequencyFile("freq.txt").String()).To(Equal("table(freq.txt)"))
			Expect(commonness.Config{APIKey: "sk-test"}.String()).To(Equal("openai(gpt-4o-mini)"))
		})

		It("should enable retry with defaults", func() {
			cfg = cfg.WithRetry()
			Expect(cfg.EnableRetry).To(BeTrue())
			Expect(cfg.RetryConfig.MaxAttempts).To(Equal(3))
			Expect(cfg.RetryConfig.Strategy).To(Equal(commonness.RetryStrategyExponential))
			Expect(cfg.RetryConfig.InitialDelay).To(Equal(time.Second))
			Expect(cfg.RetryConfig.MaxDelay).To(Equal(30 * time.Second))
		})

		It("should enable retry with a strategy", func() {
			cfg = cfg.WithRetryStrategy(commonness.RetryStrategyFibonacci, 5)
			Expect(cfg.EnableRetry).To(BeTrue())
			Expect(cfg.RetryConfig.Strategy).To(Equal(commonness.RetryStrategyFibonacci))
			Expect(cfg.RetryConfig.MaxAttempts).To(Equal(5))
		})

		It("should enable the circuit breaker with defaults", func() {
			cfg = cfg.WithCircuitBreaker()
			Expect(cfg.EnableCircuitBreaker).To(BeTrue())
			Expect(cfg.CircuitBreakerConfig.MaxRequests).To(Equal(uint32(10)))
			Expect(cfg.CircuitBreakerConfig.ReadyToTrip).ToNot(BeNil())
		})

		It("should set the remaining fields", func() {
			m := commonness.NewMetricsRecorder(prometheus.NewRegistry())
			cfg = cfg.WithLanguage("fr").WithModel(openai.GPT4o).WithTimeout(5 * time.Second).WithMetrics(m)
			Expect(cfg.Language).To(Equal("fr"))
			Expect(cfg.Model).To(Equal(openai.GPT4o))
			Expect(cfg.Timeout).To(Equal(5 * time.Second))
			Expect(cfg.Metrics).To(BeIdenticalTo(m))
		})

		It("should panic on a negative timeout", func() {
			Expect(func() { cfg.WithTimeout(-time.Second) }).To(Panic())
		})
	})

	Describe("Validate", func() {
		It("should reject an unsupported model for the estimator", func() {
			cfg := commonness.NewDefaultConfig().WithAPIKey("sk-test").WithModel("gpt-unknown")
			Expect(cfg.Validate()).To(MatchError(commonness.ErrInvalidConfig))
		})

		It("should ignore the model when no estimator is configured", func() {
			cfg := commonness.NewDefaultConfig().WithModel("gpt-unknown")
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should reject a negative timeout", func() {
			cfg := commonness.NewDefaultConfig()
			cfg.Timeout = -time.Second
			Expect(cfg.Validate()).To(MatchError(commonness.ErrInvalidConfig))
		})

		It("should reject an enabled circuit breaker without config", func() {
			cfg := commonness.NewDefaultConfig().WithCircuitBreakerConfig(nil)
			Expect(cfg.Validate()).To(MatchError(commonness.ErrInvalidConfig))
		})

		It("should reject invalid retry settings", func() {
			cfg := commonness.NewDefaultConfig().WithRetryConfig(nil)
			Expect(cfg.Validate()).To(MatchError(commonness.ErrInvalidConfig))

			cfg = commonness.NewDefaultConfig().WithRetryStrategy("linear", 3)
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("invalid retry strategy")))

			cfg = commonness.NewDefaultConfig().WithRetryStrategy(commonness.RetryStrategyConstant, 0)
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("MaxAttempts")))

			cfg = commonness.NewDefaultConfig().WithRetryConfig(&commonness.RetryConfig{
				MaxAttempts: 3,
				Strategy:    commonness.RetryStrategyConstant,
				MaxDelay:    time.Second,
			})
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("InitialDelay")))
		})
	})

	Describe("DefaultCircuitBreakerConfig", func() {
		It("should trip on consecutive failures or a high failure rate", func() {
			trip := commonness.DefaultCircuitBreakerConfig().ReadyToTrip
			Expect(trip(gobreakerCounts(5, 5, 5))).To(BeTrue())
			Expect(trip(gobreakerCounts(4, 4, 4))).To(BeFalse())
			Expect(trip(gobreakerCounts(10, 7, 1))).To(BeTrue())
			Expect(trip(gobreakerCounts(10, 6, 1))).To(BeFalse())
		})
	})
})
