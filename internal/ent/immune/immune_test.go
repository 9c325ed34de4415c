package immune_test

import (
	"math"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/ithtable/internal/ent/immune"
)

var _ = Describe("Immune", func() {
	sigs := []immune.Signature{
		{CellType: "T cells", EntrezGene: "1"},
		{CellType: "T cells", EntrezGene: "2"},
		{CellType: "B cells", EntrezGene: "3"},
		{CellType: "NK cells", EntrezGene: "4"},
	}
	ensembl := map[string][]string{
		"1": {"ENSG1"},
		"2": {"ENSG2", "ENSG2b"},
		"3": {"ENSG3"},
	}

	It("translates signature genes", func() {
		cw := immune.NewCrosswalk(sigs, ensembl)
		Expect(cw).To(HaveLen(5))
		Expect(cw[4].EnsemblGene).To(BeEmpty())
		Expect(cw.CellTypes()).To(Equal([]string{"B cells", "NK cells", "T cells"}))
	})

	It("averages expression per cell type", func() {
		cw := immune.NewCrosswalk(sigs, ensembl)
		ex := immune.Expression{
			Samples: []string{"TCGA-AA-0001-01A-11R-A000-07", "TCGA-AA-0002-01A"},
			Genes:   []string{"ENSG1", "ENSG2", "ENSG9", "ENSG3"},
			Values: [][]float64{
				{1, 4},
				{3, 6},
				{100, 100},
				{7, math.NaN()},
			},
		}
		Expect(immune.Matched(cw, ex)).To(Equal(3))
		res := immune.Scores(cw, ex)
		Expect(res).To(HaveLen(2))
		Expect(res[0].SampleID).To(Equal("TCGA-AA-0001-01A"))
		Expect(res[0].Scores["T cells"]).To(Equal(2.0))
		Expect(res[0].Scores["B cells"]).To(Equal(7.0))
		Expect(math.IsNaN(res[0].Scores["NK cells"])).To(BeTrue())
		Expect(res[1].Scores["T cells"]).To(Equal(5.0))
		Expect(math.IsNaN(res[1].Scores["B cells"])).To(BeTrue())
	})
})
