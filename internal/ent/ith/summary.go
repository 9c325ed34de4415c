package ith

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Filter keeps clusters larger than minSize. If there are no such
// clusters, only the cluster(s) of the maximum size are kept.
// The order of clusters is preserved.
func Filter(cs []Cluster, minSize float64) []Cluster {
	if len(cs) == 0 {
		return nil
	}
	maxSize := cs[0].Size
	for _, c := range cs[1:] {
		if c.Size > maxSize {
			maxSize = c.Size
		}
	}

	keep := func(c Cluster) bool { return c.Size >= maxSize }
	if maxSize > minSize {
		keep = func(c Cluster) bool { return c.Size > minSize }
	}

	res := make([]Cluster, 0, len(cs))
	for _, c := range cs {
		if keep(c) {
			res = append(res, c)
		}
	}
	return res
}

// Summarize filters clusters and computes summary statistics out of the
// retained ones. When several clusters share the maximum cell fraction or
// the maximum size, the first of them in the given order is used.
func Summarize(cs []Cluster, minSize float64) (Summary, error) {
	cs = Filter(cs, minSize)
	if len(cs) == 0 {
		return Missing(), ErrNoClusters
	}

	sizes := make([]float64, len(cs))
	fracs := make([]float64, len(cs))
	for i := range cs {
		sizes[i] = cs[i].Size
		fracs[i] = cs[i].CellFraction
	}
	total := floats.Sum(sizes)
	if total <= 0 {
		return Missing(), ErrNoClusters
	}

	dominant := floats.MaxIdx(fracs)
	largest := floats.MaxIdx(sizes)

	props := make([]float64, len(sizes))
	floats.ScaleTo(props, 1/total, sizes)

	res := Summary{
		NbClones:              float64(len(cs)),
		ClonalProp:            100 * sizes[dominant] / total,
		SmallestVAF:           floats.Min(fracs),
		ShannonIndex:          stat.Entropy(props),
		MostPopulatedCloneVAF: fracs[largest],
	}
	return res, nil
}
