package solver

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

// Summary holds aggregate statistics for a result list
type Summary struct {
	Words       int
	TotalPoints int
	Pangrams    int
	ByLength    map[int]int // word length -> number of words
}

// Summarize computes summary statistics for results
func Summarize(results []WordResult) Summary {
	s := Summary{
		Words:    len(results),
		ByLength: make(map[int]int),
	}
	for _, r := range results {
		s.TotalPoints += r.Score
		if r.IsPangram {
			s.Pangrams++
		}
		s.ByLength[r.Length]++
	}
	return s
}

// Lengths returns the word lengths present, ascending
func (s Summary) Lengths() []int {
	lengths := make([]int, 0, len(s.ByLength))
	for n := range s.ByLength {
		lengths = append(lengths, n)
	}
	slices.Sort(lengths)
	return lengths
}

// WriteSummary writes the summary block:
//
//	=== Summary ===
//	Words: 2   Total points: 20   Pangrams: 1
//	By length: {6: 1, 7: 1}
func WriteSummary(w io.Writer, s Summary) error {
	var sb strings.Builder
	sb.WriteString("=== Summary ===\n")
	fmt.Fprintf(&sb, "Words: %s   Total points: %s   Pangrams: %s\n",
		humanize.Comma(int64(s.Words)),
		humanize.Comma(int64(s.TotalPoints)),
		humanize.Comma(int64(s.Pangrams)))

	pairs := make([]string, 0, len(s.ByLength))
	for _, n := range s.Lengths() {
		pairs = append(pairs, fmt.Sprintf("%d: %d", n, s.ByLength[n]))
	}
	fmt.Fprintf(&sb, "By length: {%s}\n\n", strings.Join(pairs, ", "))

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteTop writes the k best results, one per line. The header always shows
// k as requested; k <= 0 writes only the header and k beyond the list writes
// every result.
func WriteTop(w io.Writer, results []WordResult, k int) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Top %d words ===\n", k)
	for _, r := range results[:max(0, min(k, len(results)))] {
		tag := ""
		if r.IsPangram {
			tag = " (PANGRAM)"
		}
		fmt.Fprintf(&sb, "%-20s  len=%-2d  score=%-2d%s\n", strings.ToUpper(r.Word), r.Length, r.Score, tag)
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
