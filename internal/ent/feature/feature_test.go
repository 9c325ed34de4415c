package feature_test

import (
	"math"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/ithtable/internal/ent/feature"
)

var _ = Describe("Table", func() {
	var tbl *feature.Table

	BeforeEach(func() {
		tbl = feature.New()
		tbl.AddColumns("cancer_loc")
		r := tbl.AddRow("p1")
		r.Set("cancer_loc", "BRCA")
		r.SetFloat("x", 1.5)
		r = tbl.AddRow("p2")
		r.SetFloat("x", math.NaN())
		r.SetInt("y", 3)
	})

	It("keeps columns in order of appearance", func() {
		Expect(tbl.Columns()).To(Equal([]string{"PATIENT_ID", "cancer_loc", "x", "y"}))
	})

	It("returns one row per patient", func() {
		r := tbl.AddRow("p1")
		Expect(r.Get("cancer_loc")).To(Equal("BRCA"))
		Expect(tbl.Len()).To(Equal(2))
	})

	It("converts rows to records", func() {
		Expect(tbl.Records()).To(Equal([][]string{
			{"PATIENT_ID", "cancer_loc", "x", "y"},
			{"p1", "BRCA", "1.5", ""},
			{"p2", "", "", "3"},
		}))
	})

	It("retains rows", func() {
		tbl.Retain(func(r *feature.Row) bool { return r.PatientID == "p2" })
		Expect(tbl.PatientIDs()).To(Equal([]string{"p2"}))
		_, ok := tbl.Row("p1")
		Expect(ok).To(BeFalse())
	})

	It("removes duplicates keeping the first row", func() {
		tbl.AddRow("p3").Set("barcode", "b1")
		tbl.AddRow("p4").Set("barcode", "b1")
		tbl.DedupBy("barcode")
		Expect(tbl.PatientIDs()).To(Equal([]string{"p1", "p2", "p3"}))
	})

	It("reads numbers back", func() {
		r, _ := tbl.Row("p1")
		Expect(r.Float("x")).To(Equal(1.5))
		Expect(math.IsNaN(r.Float("y"))).To(BeTrue())
	})
})
