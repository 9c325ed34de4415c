package purity_test

import (
	"math"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/ithtable/internal/ent/purity"
)

var _ = Describe("Purity", func() {
	Describe("NonDiploidFraction", func() {
		It("weights segments by length", func() {
			segs := []purity.Segment{
				{PatientID: "p1", Start: 0, Stop: 100, Major: 1, Minor: 1},
				{PatientID: "p1", Start: 100, Stop: 200, Major: 2, Minor: 1},
				{PatientID: "p2", Start: 0, Stop: 300, Major: 1, Minor: 1},
				{PatientID: "p2", Start: 300, Stop: 400, Major: 1, Minor: 0},
			}
			res := purity.NonDiploidFraction(segs)
			Expect(res["p1"]).To(Equal(0.5))
			Expect(res["p2"]).To(Equal(0.25))
		})

		It("gives zero for a diploid genome", func() {
			segs := []purity.Segment{{PatientID: "p1", Start: 0, Stop: 10, Major: 1, Minor: 1}}
			Expect(purity.NonDiploidFraction(segs)).To(HaveKeyWithValue("p1", 0.0))
		})
	})

	Describe("MathScore", func() {
		It("divides mean absolute deviation by median", func() {
			// mean 0.3, deviations 0.1 0 0.1 -> 0.0667, median 0.3
			Expect(purity.MathScore([]float64{0.2, 0.3, 0.4})).
				To(BeNumerically("~", 100*(0.2/3)/0.3, 1e-9))
		})

		It("is NaN without data", func() {
			Expect(math.IsNaN(purity.MathScore(nil))).To(BeTrue())
		})
	})

	Describe("NewCohort", func() {
		It("counts identified mutations per patient", func() {
			nan := math.NaN()
			ms := []purity.Mutation{
				{PatientID: "p1", MutationID: "m1", VAF: 0.2, VAFCN: 0.4},
				{PatientID: "p1", MutationID: "m2", VAF: 0.4, VAFCN: nan},
				{PatientID: "p1", MutationID: "", VAF: 0.3, VAFCN: 0.4},
				{PatientID: "p2", MutationID: "m3", VAF: 0.5, VAFCN: 0.5},
			}
			c := purity.NewCohort(ms)
			Expect(c.Counts).To(Equal(map[string]int{"p1": 2, "p2": 1}))
			Expect(c.Math["p2"]).To(Equal(0.0))
			Expect(c.MathCN["p1"]).To(Equal(0.0))
		})
	})
})
