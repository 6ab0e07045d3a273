package solver

import (
	"github.com/JohnPlummer/spelling-bee/commonness"
)

// Config holds the run parameters for one puzzle. It is never mutated by a solve.
type Config struct {
	Letters                string  // The seven puzzle letters, any case
	Center                 string  // Center letter, must be one of Letters
	MinLength              int     // Shortest accepted word
	MaxLength              int     // Longest accepted word, when HasMaxLength is set
	HasMaxLength           bool    // Apply the MaxLength cap
	PangramBonus           int     // Points added for a pangram
	EnableCommonnessFilter bool    // Drop words below MinCommonness when a lookup is available
	MinCommonness          float64 // Zipf threshold for the commonness filter
	Language               string  // Language code passed to the commonness lookup
}

// NewDefaultConfig creates a config with the standard puzzle rules:
// words of 4 to 10 letters, a 7 point pangram bonus, no commonness filter.
func NewDefaultConfig(letters, center string) Config {
	return Config{
		Letters:      letters,
		Center:       center,
		MinLength:    DefaultMinLength,
		MaxLength:    DefaultMaxLength,
		HasMaxLength: true,
		PangramBonus: DefaultPangramBonus,
		Language:     commonness.DefaultLanguage,
	}
}

// WithMinLength sets the shortest accepted word
func (c Config) WithMinLength(n int) Config {
	if n < 0 {
		panic("MinLength must be non-negative")
	}
	c.MinLength = n
	return c
}

// WithMaxLength caps word length at n letters
func (c Config) WithMaxLength(n int) Config {
	if n < 0 {
		panic("MaxLength must be non-negative")
	}
	c.MaxLength = n
	c.HasMaxLength = true
	return c
}

// WithoutMaxLength removes the word length cap
func (c Config) WithoutMaxLength() Config {
	c.MaxLength = 0
	c.HasMaxLength = false
	return c
}

// WithPangramBonus sets the points added for a pangram
func (c Config) WithPangramBonus(bonus int) Config {
	if bonus < 0 {
		panic("PangramBonus must be non-negative")
	}
	c.PangramBonus = bonus
	return c
}

// WithMinCommonness enables the commonness filter with the given Zipf threshold
func (c Config) WithMinCommonness(zipf float64) Config {
	c.EnableCommonnessFilter = true
	c.MinCommonness = zipf
	return c
}

// WithLanguage sets the language code passed to the commonness lookup
func (c Config) WithLanguage(lang string) Config {
	c.Language = lang
	return c
}

// Validate checks if the config is valid. Every returned error matches
// ErrInvalidConfiguration.
func (c Config) Validate() error {
	if _, err := NewPuzzle(c.Letters, c.Center); err != nil {
		return err
	}

	if c.MinLength < 0 {
		return NewConfigError("MinLength", "must be non-negative, got %d", c.MinLength)
	}

	if c.MaxLength < 0 {
		return NewConfigError("MaxLength", "must be non-negative, got %d", c.MaxLength)
	}

	if c.PangramBonus < 0 {
		return NewConfigError("PangramBonus", "must be non-negative, got %d", c.PangramBonus)
	}

	return nil
}

func (c Config) language() string {
	if c.Language == "" {
		return commonness.DefaultLanguage
	}
	return c.Language
}
