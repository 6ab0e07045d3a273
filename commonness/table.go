package commonness

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Table is an in-memory word frequency table for a single language.
//
// Zipf values are derived from raw counts as log10 of the word's frequency
// per billion words, rounded to two decimals. Words missing from the table
// score 0.
type Table struct {
	lang   string
	counts map[string]int64
	total  int64
}

// NewTable builds a table from word counts. Words are lowercased; counts for
// words that collide after lowercasing are summed.
func NewTable(lang string, counts map[string]int64) *Table {
	t := &Table{
		lang:   lang,
		counts: make(map[string]int64, len(counts)),
	}
	for w, n := range counts {
		t.add(w, n)
	}
	return t
}

// LoadTableFile reads a frequency table from path. See LoadTable for the format.
func LoadTableFile(path, lang string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frequency table: %w", err)
	}
	defer f.Close()

	t, err := LoadTable(f, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to load frequency table %s: %w", path, err)
	}
	return t, nil
}

// LoadTable parses lines of the form
//
//	word count
//
// where count is a non-negative integer occurrence count. Blank lines and lines
// starting with '#' are ignored.
func LoadTable(r io.Reader, lang string) (*Table, error) {
	t := &Table{
		lang:   lang,
		counts: make(map[string]int64),
	}

	s := bufio.NewScanner(r)
	lno := 0
	for s.Scan() {
		lno++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"word count\", got %d fields", lno, len(fields))
		}

		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("line %d: invalid count %q", lno, fields[1])
		}
		t.add(fields[0], n)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Table) add(word string, n int64) {
	t.counts[strings.ToLower(word)] += n
	t.total += n
}

// Language returns the language code this table serves
func (t *Table) Language() string {
	return t.lang
}

// Len returns the number of distinct words in the table
func (t *Table) Len() int {
	return len(t.counts)
}

// Zipf returns the Zipf frequency of word
func (t *Table) Zipf(word string) float64 {
	n := t.counts[strings.ToLower(word)]
	if n == 0 || t.total == 0 {
		return 0
	}

	z := math.Log10(float64(n) / float64(t.total) * 1e9)
	if z < 0 {
		return 0
	}
	return math.Round(z*100) / 100
}

// Commonness implements Lookup
func (t *Table) Commonness(_ context.Context, word, lang string) (float64, error) {
	if lang != t.lang {
		return 0, fmt.Errorf("%w: table serves %q, got %q", ErrUnsupportedLanguage, t.lang, lang)
	}
	return t.Zipf(word), nil
}
