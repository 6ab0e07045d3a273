package solver

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JohnPlummer/spelling-bee/commonness"
)

// contextCheckFrequency is how many candidates are scanned between context checks
const contextCheckFrequency = 1000

// rejection names the filter that dropped a candidate
type rejection string

const (
	accepted        rejection = ""
	rejectMalformed rejection = "malformed"
	rejectTooShort  rejection = "too_short"
	rejectNoCenter  rejection = "missing_center"
	rejectOffPuzzle rejection = "invalid_letter"
	rejectTooLong   rejection = "too_long"
	rejectUncommon  rejection = "uncommon"
)

// Internal solver implementation
type solver struct {
	config     Config
	puzzle     Puzzle
	commonness commonness.Lookup
	metrics    *MetricsRecorder
}

// New validates cfg and creates a Solver. Configuration errors match
// ErrInvalidConfiguration.
func New(cfg Config, opts ...Option) (Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	puzzle, err := NewPuzzle(cfg.Letters, cfg.Center)
	if err != nil {
		return nil, err
	}

	s := &solver{
		config: cfg,
		puzzle: puzzle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Solve is a one-shot convenience for New followed by Solver.Solve
func Solve(ctx context.Context, cfg Config, source WordSource, opts ...Option) ([]WordResult, error) {
	s, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx, source)
}

// Solve implements Solver
func (s *solver) Solve(ctx context.Context, source WordSource) ([]WordResult, error) {
	if source == nil {
		return nil, NewConfigError("source", "word source is required")
	}

	runID := uuid.NewString()
	start := time.Now()

	slog.Info("Solving puzzle",
		"run_id", runID,
		"letters", s.puzzle.Letters.String(),
		"center", string(s.puzzle.Center),
		"source", source.String())

	if s.config.EnableCommonnessFilter && s.commonness == nil {
		slog.Warn("Commonness lookup unavailable, skipping commonness filter",
			"run_id", runID,
			"min_commonness", s.config.MinCommonness)
	}

	results, err := s.solve(ctx, runID, source)
	s.metrics.RecordSolveDuration(time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordSolve("error")
		return nil, err
	}
	s.metrics.RecordSolve("success")

	slog.Info("Puzzle solved",
		"run_id", runID,
		"words", len(results),
		"duration", time.Since(start))

	return results, nil
}

func (s *solver) solve(ctx context.Context, runID string, source WordSource) ([]WordResult, error) {
	rc, err := source.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open word source %s: %w", source, err)
	}
	defer rc.Close()

	results, err := s.scan(ctx, runID, rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read word source %s: %w", source, err)
	}

	SortResults(results)
	return results, nil
}

func (s *solver) scan(ctx context.Context, runID string, r io.Reader) ([]WordResult, error) {
	var results []WordResult
	candidates := 0

	sc := newCandidateScanner(r)
	for sc.Scan() {
		candidates++
		if candidates%contextCheckFrequency == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		word := sc.Word()
		s.metrics.RecordCandidate()

		reason, err := s.check(ctx, word)
		if err != nil {
			return nil, err
		}
		if reason != accepted {
			s.metrics.RecordRejection(string(reason))
			continue
		}

		result := s.score(word)
		s.metrics.RecordAccepted(result)
		results = append(results, result)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if sc.Skipped() > 0 {
		s.metrics.RecordRejections(string(rejectMalformed), sc.Skipped())
		slog.Info("Skipped word source lines that are not a-z words",
			"run_id", runID,
			"skipped", sc.Skipped(),
			"lines", sc.Lines())
	}

	return results, nil
}

// check applies the filters in order and names the first one that fails.
// The only error is context cancellation during a commonness lookup.
func (s *solver) check(ctx context.Context, word string) (rejection, error) {
	if len(word) < s.config.MinLength {
		return rejectTooShort, nil
	}

	letters := LetterSetOf(word)
	if !letters.Has(s.puzzle.Center) {
		return rejectNoCenter, nil
	}
	if !letters.SubsetOf(s.puzzle.Letters) {
		return rejectOffPuzzle, nil
	}

	if s.config.HasMaxLength && len(word) > s.config.MaxLength {
		return rejectTooLong, nil
	}

	if s.config.EnableCommonnessFilter && s.commonness != nil {
		zipf, err := s.commonness.Commonness(ctx, word, s.config.language())
		if err != nil {
			if ctx.Err() != nil {
				return accepted, ctx.Err()
			}
			// An unanswerable lookup leaves the word unfiltered
			s.metrics.RecordCommonnessError()
			slog.Debug("Commonness lookup failed, keeping word",
				"word", word,
				"error", err)
			return accepted, nil
		}
		if zipf < s.config.MinCommonness {
			return rejectUncommon, nil
		}
	}

	return accepted, nil
}

func (s *solver) score(word string) WordResult {
	pangram := s.puzzle.IsPangram(LetterSetOf(word))
	return WordResult{
		Word:      word,
		Score:     ScoreWord(len(word), pangram, s.config.PangramBonus),
		IsPangram: pangram,
		Length:    len(word),
	}
}

// ScoreWord scores a word: 1 point for four letters, otherwise one point per
// letter, plus the bonus for a pangram.
func ScoreWord(length int, pangram bool, pangramBonus int) int {
	score := length
	if length == 4 {
		score = 1
	}
	if pangram {
		score += pangramBonus
	}
	return score
}

// SortResults orders results by score descending, then word ascending
func SortResults(results []WordResult) {
	slices.SortFunc(results, func(a, b WordResult) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return strings.Compare(a.Word, b.Word)
	})
}
