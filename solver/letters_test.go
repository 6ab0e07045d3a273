package solver_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/JohnPlummer/spelling-bee/solver"
)

var _ = Describe("Letters", func() {
	Describe("LetterSetOf", func() {
		It("should collect distinct letters", func() {
			set := solver.LetterSetOf("antlers")
			Expect(set.Len()).To(Equal(7))
			Expect(set.String()).To(Equal("aelnrst"))
		})

		It("should collapse repeated letters", func() {
			set := solver.LetterSetOf("sassafras")
			Expect(set.String()).To(Equal("afrs"))
			Expect(set.Len()).To(Equal(4))
		})

		It("should ignore bytes outside a-z", func() {
			Expect(solver.LetterSetOf("Ab1-c").String()).To(Equal("bc"))
		})

		It("should report subsets", func() {
			puzzle := solver.LetterSetOf("aesltrn")
			Expect(solver.LetterSetOf("rental").SubsetOf(puzzle)).To(BeTrue())
			Expect(solver.LetterSetOf("rentals").SubsetOf(puzzle)).To(BeTrue())
			Expect(solver.LetterSetOf("xylem").SubsetOf(puzzle)).To(BeFalse())
		})
	})

	Describe("NewPuzzle", func() {
		It("should accept seven distinct letters in any case", func() {
			p, err := solver.NewPuzzle("AESLTRN", "A")
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Letters.String()).To(Equal("aelnrst"))
			Expect(p.Center).To(Equal(byte('a')))
		})

		It("should ignore whitespace between letters", func() {
			p, err := solver.NewPuzzle("a e s l t r n", " T ")
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Letters.Len()).To(Equal(7))
			Expect(p.Center).To(Equal(byte('t')))
		})

		It("should reject a repeated letter leaving six distinct letters", func() {
			_, err := solver.NewPuzzle("AESLTRA", "A")
			Expect(err).To(MatchError(solver.ErrInvalidConfiguration))
			Expect(err.Error()).To(ContainSubstring("expected 7 distinct letters; got 6"))
		})

		It("should reject more than seven distinct letters", func() {
			_, err := solver.NewPuzzle("AESLTRNO", "A")
			Expect(err).To(MatchError(solver.ErrInvalidConfiguration))
			Expect(err.Error()).To(ContainSubstring("got 8"))
		})

		It("should accept duplicates that still leave seven distinct letters", func() {
			p, err := solver.NewPuzzle("AAESLTRN", "a")
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Letters.Len()).To(Equal(7))
		})

		It("should reject a center letter outside the set", func() {
			_, err := solver.NewPuzzle("AESLTRN", "X")
			Expect(err).To(MatchError(solver.ErrInvalidConfiguration))
			Expect(err.Error()).To(ContainSubstring("center letter"))
		})

		It("should reject an empty or multi-letter center", func() {
			_, err := solver.NewPuzzle("AESLTRN", "")
			Expect(err).To(MatchError(solver.ErrInvalidConfiguration))

			_, err = solver.NewPuzzle("AESLTRN", "AE")
			Expect(err).To(MatchError(solver.ErrInvalidConfiguration))
		})

		It("should reject letters outside a-z", func() {
			_, err := solver.NewPuzzle("AESLTR1", "A")
			Expect(err).To(MatchError(solver.ErrInvalidConfiguration))
			Expect(err.Error()).To(ContainSubstring("not in a-z"))
		})
	})

	Describe("Puzzle", func() {
		var p solver.Puzzle

		BeforeEach(func() {
			var err error
			p, err = solver.NewPuzzle("AESLTRN", "A")
			Expect(err).ToNot(HaveOccurred())
		})

		It("should allow words using the center and only puzzle letters", func() {
			Expect(p.Allows(solver.LetterSetOf("rental"))).To(BeTrue())
			Expect(p.Allows(solver.LetterSetOf("tense"))).To(BeFalse())
			Expect(p.Allows(solver.LetterSetOf("plant"))).To(BeFalse())
		})

		It("should detect pangrams", func() {
			Expect(p.IsPangram(solver.LetterSetOf("antlers"))).To(BeTrue())
			Expect(p.IsPangram(solver.LetterSetOf("sternal"))).To(BeTrue())
			Expect(p.IsPangram(solver.LetterSetOf("rental"))).To(BeFalse())
		})
	})
})
