// Package purity contains copy-number and purity related entities and
// per-patient metrics derived from them.
package purity

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Segment is a copy-number segment of a tumor sample.
type Segment struct {
	// Participant is the sample name as used by ASCAT.
	Participant string

	// PatientID is the patient the sample belongs to.
	PatientID string

	// Start is the first position of the segment.
	Start int64

	// Stop is the last position of the segment.
	Stop int64

	// Major is the copy number of the major allele.
	Major int

	// Minor is the copy number of the minor allele.
	Minor int
}

// Length of the segment.
func (s Segment) Length() int64 {
	return s.Stop - s.Start
}

// IsDiploid is true for the normal (1,1) allelic state.
func (s Segment) IsDiploid() bool {
	return s.Major == 1 && s.Minor == 1
}

// NonDiploidFraction computes for every patient a fraction of the genome
// (weighted by segment length) that is not in (1,1) state.
func NonDiploidFraction(segs []Segment) map[string]float64 {
	total := make(map[string]int64)
	altered := make(map[string]int64)
	for _, s := range segs {
		total[s.PatientID] += s.Length()
		if !s.IsDiploid() {
			altered[s.PatientID] += s.Length()
		}
	}

	res := make(map[string]float64, len(total))
	for k, v := range total {
		if v == 0 {
			res[k] = math.NaN()
			continue
		}
		res[k] = float64(altered[k]) / float64(v)
	}
	return res
}

// Mutation is a somatic mutation call with its allele fractions.
type Mutation struct {
	// PatientID of the patient the mutation belongs to.
	PatientID string

	// MutationID is empty for rows without a mutation identifier.
	MutationID string

	// VAF is the variant allele fraction.
	VAF float64

	// VAFCN is the VAF corrected for copy number and purity.
	VAFCN float64
}

// Cohort summarizes mutation calls of one calling pipeline per patient.
type Cohort struct {
	// Counts are numbers of identified mutations per patient.
	Counts map[string]int

	// Math is the MATH score on VAF per patient.
	Math map[string]float64

	// MathCN is the MATH score on copy-number corrected VAF per patient.
	MathCN map[string]float64
}

// NewCohort groups mutations by patient.
func NewCohort(ms []Mutation) Cohort {
	res := Cohort{
		Counts: make(map[string]int),
		Math:   make(map[string]float64),
		MathCN: make(map[string]float64),
	}
	vafs := make(map[string][]float64)
	vafsCN := make(map[string][]float64)
	for _, m := range ms {
		if _, ok := res.Counts[m.PatientID]; !ok {
			res.Counts[m.PatientID] = 0
		}
		if m.MutationID != "" {
			res.Counts[m.PatientID]++
		}
		if !math.IsNaN(m.VAF) {
			vafs[m.PatientID] = append(vafs[m.PatientID], m.VAF)
		}
		if !math.IsNaN(m.VAFCN) {
			vafsCN[m.PatientID] = append(vafsCN[m.PatientID], m.VAFCN)
		}
	}
	for k := range res.Counts {
		res.Math[k] = MathScore(vafs[k])
		res.MathCN[k] = MathScore(vafsCN[k])
	}
	return res
}

// MathScore is a mutant-allele tumor heterogeneity score: mean absolute
// deviation of allele fractions divided by their median, times 100.
func MathScore(vafs []float64) float64 {
	if len(vafs) == 0 {
		return math.NaN()
	}
	mean := stat.Mean(vafs, nil)
	var dev float64
	for _, v := range vafs {
		dev += math.Abs(v - mean)
	}
	dev /= float64(len(vafs))
	return 100 * dev / median(vafs)
}

func median(vs []float64) float64 {
	s := make([]float64, len(vs))
	copy(s, vs)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}
