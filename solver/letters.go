package solver

import (
	"math/bits"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LetterSet is a set of lowercase ASCII letters; bit i stands for 'a'+i.
type LetterSet uint32

// LetterSetOf returns the distinct letters of word. Bytes outside a-z are ignored.
func LetterSetOf(word string) LetterSet {
	var set LetterSet
	for i := 0; i < len(word); i++ {
		if c := word[i]; c >= 'a' && c <= 'z' {
			set |= 1 << (c - 'a')
		}
	}
	return set
}

// Has reports whether c is in the set
func (s LetterSet) Has(c byte) bool {
	return c >= 'a' && c <= 'z' && s&(1<<(c-'a')) != 0
}

// Len returns the number of letters in the set
func (s LetterSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

// SubsetOf reports whether every letter of s is in o
func (s LetterSet) SubsetOf(o LetterSet) bool {
	return s&o == s
}

// String returns the letters in alphabetical order
func (s LetterSet) String() string {
	var sb strings.Builder
	for c := byte('a'); c <= 'z'; c++ {
		if s.Has(c) {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// Puzzle is a validated set of seven letters and its center letter
type Puzzle struct {
	Letters LetterSet
	Center  byte
}

// NewPuzzle lowercases letters and center and validates them. Whitespace in
// letters is ignored, so "AESLTRN" and "a e s l t r n" are the same puzzle.
func NewPuzzle(letters, center string) (Puzzle, error) {
	var p Puzzle

	for _, r := range strings.ToLower(letters) {
		switch {
		case r >= 'a' && r <= 'z':
			p.Letters |= 1 << (r - 'a')
		case unicode.IsSpace(r):
		default:
			return Puzzle{}, NewConfigError("letters", "letter %q is not in a-z", r)
		}
	}
	if n := p.Letters.Len(); n != PuzzleSize {
		return Puzzle{}, NewConfigError("letters", "expected %d distinct letters; got %d", PuzzleSize, n)
	}

	c := strings.ToLower(strings.TrimSpace(center))
	if utf8.RuneCountInString(c) != 1 {
		return Puzzle{}, NewConfigError("center", "expected a single letter; got %q", center)
	}
	if len(c) != 1 || !p.Letters.Has(c[0]) {
		return Puzzle{}, NewConfigError("center", "center letter %q must be among %q", c, p.Letters.String())
	}
	p.Center = c[0]

	return p, nil
}

// Allows reports whether a word with the given letters is playable: it uses
// the center letter and nothing outside the puzzle.
func (p Puzzle) Allows(word LetterSet) bool {
	return word.Has(p.Center) && word.SubsetOf(p.Letters)
}

// IsPangram reports whether a word with the given letters uses every puzzle letter
func (p Puzzle) IsPangram(word LetterSet) bool {
	return p.Letters.SubsetOf(word)
}
