package solver_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/JohnPlummer/spelling-bee/solver"
)

var _ = Describe("MetricsRecorder", func() {
	var (
		reg     *prometheus.Registry
		metrics *solver.MetricsRecorder
		cfg     solver.Config
	)

	BeforeEach(func() {
		reg = prometheus.NewRegistry()
		metrics = solver.NewMetricsRecorder(reg)
		cfg = solver.NewDefaultConfig("AESLTRN", "A")
	})

	It("should be safe to use when nil or disabled", func() {
		var nilRecorder *solver.MetricsRecorder
		Expect(func() {
			nilRecorder.RecordSolve("success")
			nilRecorder.RecordAccepted(solver.WordResult{Word: "rental", Score: 6})
		}).ToNot(Panic())

		disabled := solver.NewMetricsRecorder(nil)
		Expect(func() {
			disabled.RecordCandidate()
			disabled.RecordRejections("too_short", 3)
			disabled.RecordCommonnessError()
		}).ToNot(Panic())
	})

	It("should record each filter outcome of a solve", func() {
		_, err := solver.Solve(context.Background(), cfg,
			solver.LinesSource("rental", "antlers", "xyz123", "la", "tense", "plant"),
			solver.WithMetrics(metrics))
		Expect(err).ToNot(HaveOccurred())

		Expect(gathered(reg, "spellingbee_solves_total", map[string]string{"status": "success"})).To(Equal(1.0))
		Expect(gathered(reg, "spellingbee_candidates_scanned_total", nil)).To(Equal(5.0))
		Expect(gathered(reg, "spellingbee_words_rejected_total", map[string]string{"reason": "malformed"})).To(Equal(1.0))
		Expect(gathered(reg, "spellingbee_words_rejected_total", map[string]string{"reason": "too_short"})).To(Equal(1.0))
		Expect(gathered(reg, "spellingbee_words_rejected_total", map[string]string{"reason": "missing_center"})).To(Equal(1.0))
		Expect(gathered(reg, "spellingbee_words_rejected_total", map[string]string{"reason": "invalid_letter"})).To(Equal(1.0))
		Expect(gathered(reg, "spellingbee_words_accepted_total", nil)).To(Equal(2.0))
		Expect(gathered(reg, "spellingbee_pangrams_found_total", nil)).To(Equal(1.0))
		Expect(gathered(reg, "spellingbee_word_score", nil)).To(Equal(2.0))
		Expect(gathered(reg, "spellingbee_solve_duration_seconds", nil)).To(Equal(1.0))
	})

	It("should record uncommon rejections and lookup failures", func() {
		lookup := &stubLookup{err: errors.New("unavailable")}
		_, err := solver.Solve(context.Background(), cfg.WithMinCommonness(3),
			solver.LinesSource("rental", "antlers"),
			solver.WithCommonness(lookup),
			solver.WithMetrics(metrics))
		Expect(err).ToNot(HaveOccurred())
		Expect(gathered(reg, "spellingbee_commonness_errors_total", nil)).To(Equal(2.0))

		reg = prometheus.NewRegistry()
		metrics = solver.NewMetricsRecorder(reg)
		_, err = solver.Solve(context.Background(), cfg.WithMinCommonness(3),
			solver.LinesSource("rental", "antlers"),
			solver.WithCommonness(&stubLookup{zipf: 1}),
			solver.WithMetrics(metrics))
		Expect(err).ToNot(HaveOccurred())
		Expect(gathered(reg, "spellingbee_words_rejected_total", map[string]string{"reason": "uncommon"})).To(Equal(2.0))
	})

	It("should record failed solves", func() {
		_, err := solver.Solve(context.Background(), cfg,
			solver.FileSource("/nonexistent/wordlist.txt"),
			solver.WithMetrics(metrics))
		Expect(err).To(HaveOccurred())
		Expect(gathered(reg, "spellingbee_solves_total", map[string]string{"status": "error"})).To(Equal(1.0))
	})
})

// gathered returns the value of the first sample of name whose labels include
// labels. Histograms report their sample count.
func gathered(reg *prometheus.Registry, name string, labels map[string]string) float64 {
	families, err := reg.Gather()
	Expect(err).ToNot(HaveOccurred())

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			matched := 0
			for _, pair := range m.GetLabel() {
				if v, ok := labels[pair.GetName()]; ok && v == pair.GetValue() {
					matched++
				}
			}
			if matched != len(labels) {
				continue
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return 0
}
