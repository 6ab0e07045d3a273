// Package solver solves the NYT Spelling Bee: given seven distinct letters and
// a mandatory center letter, it finds every dictionary word that can be built
// from them, scores the words and ranks them.
//
// A word qualifies when it
//   - has at least MinLength letters (default 4)
//   - contains the center letter
//   - uses only the seven puzzle letters, each as often as needed
//   - has at most MaxLength letters, when HasMaxLength is set (default 10)
//   - is at least MinCommonness on the Zipf scale, when the commonness filter
//     is enabled and a commonness lookup is available
//
// Four-letter words score 1 point, longer words one point per letter, and a
// pangram (a word using all seven letters) earns PangramBonus extra points.
//
// Basic usage:
//
//	cfg := solver.NewDefaultConfig("AESLTRN", "A")
//	results, err := solver.Solve(ctx, cfg, solver.FileSource("wordlist.txt"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	solver.WriteSummary(os.Stdout, solver.Summarize(results))
//	solver.WriteTop(os.Stdout, results, 20)
package solver
