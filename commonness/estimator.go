package commonness

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Estimator asks an OpenAI chat model for Zipf frequency estimates.
// Estimates are cached per language and word for the life of the Estimator.
type Estimator struct {
	client  OpenAIClient
	model   string
	prompt  string
	timeout time.Duration
	metrics *MetricsRecorder

	mu    sync.Mutex
	cache map[string]float64
}

// EstimatorOption configures an Estimator
type EstimatorOption func(*Estimator)

// WithModel sets the chat model used for estimates
func WithModel(model string) EstimatorOption {
	return func(e *Estimator) {
		e.model = model
	}
}

// WithPrompt replaces the user prompt. It is formatted with the word and the
// language name, in that order.
func WithPrompt(prompt string) EstimatorOption {
	return func(e *Estimator) {
		e.prompt = prompt
	}
}

// WithTimeout bounds each API request
func WithTimeout(timeout time.Duration) EstimatorOption {
	return func(e *Estimator) {
		e.timeout = timeout
	}
}

// WithEstimatorMetrics records API call metrics on m
func WithEstimatorMetrics(m *MetricsRecorder) EstimatorOption {
	return func(e *Estimator) {
		e.metrics = m
	}
}

// NewEstimator creates an estimator around an existing OpenAI client
func NewEstimator(client OpenAIClient, opts ...EstimatorOption) *Estimator {
	e := &Estimator{
		client: client,
		model:  openai.GPT4oMini,
		prompt: zipfPrompt,
		cache:  make(map[string]float64),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEstimatorFromKey creates an estimator with a real OpenAI client
func NewEstimatorFromKey(apiKey string, opts ...EstimatorOption) (*Estimator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if zipfPromptError != nil {
		return nil, zipfPromptError
	}
	return NewEstimator(openai.NewClient(apiKey), opts...), nil
}

// Commonness implements Lookup
func (e *Estimator) Commonness(ctx context.Context, word, lang string) (float64, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0, ErrEmptyWord
	}

	key := lang + ":" + word
	e.mu.Lock()
	zipf, ok := e.cache[key]
	e.mu.Unlock()
	if ok {
		return zipf, nil
	}

	zipf, err := e.estimate(ctx, word, lang)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	e.cache[key] = zipf
	e.mu.Unlock()

	slog.Debug("Commonness estimated",
		"word", word,
		"lang", lang,
		"zipf", zipf)

	return zipf, nil
}

func (e *Estimator) estimate(ctx context.Context, word, lang string) (float64, error) {
	schema, err := jsonschema.GenerateSchemaForType(estimateResponse{})
	if err != nil {
		return 0, fmt.Errorf("failed to generate JSON schema: %w", err)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := e.client.CreateChatCompletion(ctx, e.buildChatRequest(word, lang, schema))
	if err != nil {
		e.metrics.RecordAPICall("error", time.Since(start).Seconds())
		return 0, fmt.Errorf("OpenAI API request failed for %q: %w", word, err)
	}
	e.metrics.RecordAPICall("success", time.Since(start).Seconds())
	e.metrics.RecordTokensUsed("prompt", resp.Usage.PromptTokens)
	e.metrics.RecordTokensUsed("completion", resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("OpenAI returned empty response with no choices for %q", word)
	}

	return parseEstimate(resp.Choices[0].Message.Content, word)
}

func (e *Estimator) buildChatRequest(word, lang string, schema *jsonschema.Definition) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(e.prompt, word, languageName(lang)),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Schema: schema,
				Name:   "zipf_estimate",
			},
		},
	}
}

func parseEstimate(content, word string) (float64, error) {
	var result estimateResponse
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return 0, fmt.Errorf("%w: failed to unmarshal response for %q: %v", ErrInvalidEstimate, word, err)
	}

	if result.Word != "" && !strings.EqualFold(result.Word, word) {
		slog.Warn("Estimate returned for a different word",
			"expected", word,
			"received", result.Word)
	}

	if result.Zipf < MinZipf || result.Zipf > MaxZipf {
		return 0, fmt.Errorf("%w: zipf %.2f for %q must be between %.0f and %.0f",
			ErrInvalidEstimate, result.Zipf, word, MinZipf, MaxZipf)
	}

	return result.Zipf, nil
}
