package solver

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/JohnPlummer/spelling-bee/commonness"
)

// WordResult represents a dictionary word that passed every filter
type WordResult struct {
	Word      string // Lowercase word
	Score     int    // Points awarded for the word
	IsPangram bool   // Word uses all seven puzzle letters
	Length    int    // Number of letters in Word
}

// Solver finds and ranks every valid word for one puzzle
type Solver interface {
	// Solve reads source once and returns qualifying words ordered by score
	// descending, then word ascending.
	Solve(ctx context.Context, source WordSource) ([]WordResult, error)
}

// WordSource provides the dictionary, one candidate word per line
type WordSource interface {
	Open() (io.ReadCloser, error)
	String() string
}

// Option is a functional option for configuring a Solver
type Option func(*solver)

// WithCommonness injects the commonness collaborator. A nil lookup means the
// collaborator is unavailable and the commonness filter is skipped.
func WithCommonness(lookup commonness.Lookup) Option {
	return func(s *solver) {
		s.commonness = lookup
	}
}

// WithMetrics records solve metrics on m
func WithMetrics(m *MetricsRecorder) Option {
	return func(s *solver) {
		s.metrics = m
	}
}

const (
	// PuzzleSize is the number of distinct letters in a puzzle
	PuzzleSize = 7

	DefaultMinLength    = 4
	DefaultMaxLength    = 10
	DefaultPangramBonus = 7
)

// ErrInvalidConfiguration is matched by every configuration error
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigError describes a rejected configuration field
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for field '%s': %s", e.Field, e.Message)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NewConfigError creates a new ConfigError
func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}
