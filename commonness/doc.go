// Package commonness estimates how common words are, so a puzzle
// solver can drop obscure dictionary entries.
//
// The solver treats commonness as an optional collaborator: anything that
// satisfies Lookup can be plugged in, and a nil Lookup means "unavailable".
//
// Features:
//   - Frequency tables loaded from "word count" text files (Table)
//   - LLM-backed estimates through the OpenAI chat completion API (Estimator)
//   - Retry logic with exponential, constant or fibonacci backoff
//   - Circuit breaker pattern for the remote estimator
//   - Prometheus metrics for lookups and API calls
//
// Basic usage:
//
//	cfg := commonness.NewDefaultConfig().WithFrequencyFile("freq.txt")
//	lookup, err := commonness.Build(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	zipf, err := lookup.Commonness(ctx, "rental", "en")
package commonness
