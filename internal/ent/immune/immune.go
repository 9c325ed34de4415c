// Package immune computes immune cell-type scores from gene expression
// using gene signatures of cell types.
package immune

import (
	"math"
	"sort"
)

// SampleIDLen is the length of a TCGA sample barcode.
const SampleIDLen = 16

// Signature assigns a gene (Entrez identifier) to a cell type.
type Signature struct {
	CellType   string
	EntrezGene string
}

// SignatureGene is a Signature with the gene translated to the
// identifier scheme of expression matrices. EnsemblGene is empty if the
// gene has no translation.
type SignatureGene struct {
	Signature
	EnsemblGene string
}

// Crosswalk is the list of signature genes in Ensembl identifiers.
type Crosswalk []SignatureGene

// NewCrosswalk translates signatures with an Entrez to Ensembl map. A gene
// with several Ensembl identifiers produces several entries.
func NewCrosswalk(sigs []Signature, ensembl map[string][]string) Crosswalk {
	res := make(Crosswalk, 0, len(sigs))
	for _, s := range sigs {
		ids := ensembl[s.EntrezGene]
		if len(ids) == 0 {
			res = append(res, SignatureGene{Signature: s})
			continue
		}
		for _, id := range ids {
			res = append(res, SignatureGene{Signature: s, EnsemblGene: id})
		}
	}
	return res
}

// CellTypes returns sorted unique cell types.
func (cw Crosswalk) CellTypes() []string {
	seen := make(map[string]struct{})
	var res []string
	for _, s := range cw {
		if _, ok := seen[s.CellType]; ok {
			continue
		}
		seen[s.CellType] = struct{}{}
		res = append(res, s.CellType)
	}
	sort.Strings(res)
	return res
}

// Expression is a normalized expression matrix with genes as rows and
// samples as columns.
type Expression struct {
	// Samples are column names.
	Samples []string

	// Genes are row names, they might repeat.
	Genes []string

	// Values has one slice per gene, aligned with Samples.
	Values [][]float64
}

// SampleScores contains mean expression of every cell type in a sample.
type SampleScores struct {
	// SampleID is truncated to SampleIDLen.
	SampleID string

	// Scores is indexed by cell type.
	Scores map[string]float64
}

// Scores computes average expression of signature genes per cell type for
// every sample. Genes absent from the matrix are ignored; a cell type
// without any expressed gene gets NaN.
func Scores(cw Crosswalk, ex Expression) []SampleScores {
	rowsByGene := make(map[string][]int)
	for i, g := range ex.Genes {
		rowsByGene[g] = append(rowsByGene[g], i)
	}

	rowsByType := make(map[string][]int)
	for _, s := range cw {
		if s.EnsemblGene == "" {
			continue
		}
		rowsByType[s.CellType] = append(rowsByType[s.CellType], rowsByGene[s.EnsemblGene]...)
	}

	cellTypes := cw.CellTypes()
	res := make([]SampleScores, len(ex.Samples))
	for j, smp := range ex.Samples {
		if len(smp) > SampleIDLen {
			smp = smp[:SampleIDLen]
		}
		ss := SampleScores{SampleID: smp, Scores: make(map[string]float64, len(cellTypes))}
		for _, ct := range cellTypes {
			var sum float64
			var n int
			for _, i := range rowsByType[ct] {
				v := ex.Values[i][j]
				if math.IsNaN(v) {
					continue
				}
				sum += v
				n++
			}
			if n == 0 {
				ss.Scores[ct] = math.NaN()
				continue
			}
			ss.Scores[ct] = sum / float64(n)
		}
		res[j] = ss
	}
	return res
}

// Matched returns the number of signature entries found in the matrix.
func Matched(cw Crosswalk, ex Expression) int {
	genes := make(map[string]struct{}, len(ex.Genes))
	for _, g := range ex.Genes {
		genes[g] = struct{}{}
	}
	var res int
	for _, s := range cw {
		if _, ok := genes[s.EnsemblGene]; ok {
			res++
		}
	}
	return res
}
