package solver

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single dictionary line
const maxLineSize = 1024 * 1024

// FileSource reads words from a text file
func FileSource(path string) WordSource {
	return fileSource{path: path}
}

type fileSource struct {
	path string
}

func (s fileSource) Open() (io.ReadCloser, error) {
	return os.Open(s.path)
}

func (s fileSource) String() string {
	return s.path
}

// ReaderSource reads words from r. The reader is consumed by the first solve.
func ReaderSource(name string, r io.Reader) WordSource {
	return readerSource{name: name, r: r}
}

type readerSource struct {
	name string
	r    io.Reader
}

func (s readerSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(s.r), nil
}

func (s readerSource) String() string {
	return s.name
}

// LinesSource serves the given lines and can be solved repeatedly
func LinesSource(lines ...string) WordSource {
	return linesSource(strings.Join(lines, "\n"))
}

type linesSource string

func (s linesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

func (s linesSource) String() string {
	return "lines"
}

// candidateScanner yields normalized candidate words, silently skipping lines
// that are not purely a-z after normalization.
type candidateScanner struct {
	sc      *bufio.Scanner
	word    string
	lines   int
	skipped int
}

func newCandidateScanner(r io.Reader) *candidateScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sc.Split(scanLines)
	return &candidateScanner{sc: sc}
}

// scanLines is a bufio.SplitFunc that ends a line at "\n", "\r\n" or a lone "\r"
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		switch {
		case i+1 < len(data) && data[i+1] == '\n':
			return i + 2, data[:i], nil
		case i+1 < len(data) || atEOF:
			return i + 1, data[:i], nil
		}
		// A trailing '\r' may be the first half of "\r\n"
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func (s *candidateScanner) Scan() bool {
	for s.sc.Scan() {
		s.lines++
		w := normalizeCandidate(s.sc.Text())
		if !isLowerAlpha(w) {
			s.skipped++
			continue
		}
		s.word = w
		return true
	}
	return false
}

func (s *candidateScanner) Word() string { return s.word }
func (s *candidateScanner) Err() error   { return s.sc.Err() }
func (s *candidateScanner) Lines() int   { return s.lines }
func (s *candidateScanner) Skipped() int { return s.skipped }

// normalizeCandidate drops undecodable bytes, trims and lowercases a line
func normalizeCandidate(line string) string {
	return strings.ToLower(strings.TrimSpace(strings.ToValidUTF8(line, "")))
}

// isLowerAlpha matches ^[a-z]+$
func isLowerAlpha(w string) bool {
	if w == "" {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
