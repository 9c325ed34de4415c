// Package ith contains entities describing intra-tumor heterogeneity (ITH)
// results: clusters of mutations found by a clustering method and the
// summary statistics computed from them.
package ith

import (
	"errors"
	"math"
)

// ErrNoClusters is returned when no usable clusters remain after
// filtering.
var ErrNoClusters = errors.New("no usable clusters")

// StatNames are suffixes of the output columns created for every
// method/dataset pair, in the order of Summary.Values.
var StatNames = []string{
	"nb_clones",
	"clonal_prop",
	"smallest_vaf",
	"shannon_index",
	"most_populated_clone_vaf",
}

// Cluster is a group of mutations assigned to the same clone.
type Cluster struct {
	// Name is a label given to the cluster by the method.
	Name string

	// Size is the number of mutations in the cluster.
	Size float64

	// CellFraction is the mean cellular prevalence of the cluster (or a
	// proxy of it, depending on the method).
	CellFraction float64
}

// Summary contains five comparable statistics describing the clonal
// composition of one patient's tumor according to one method.
type Summary struct {
	// NbClones is the number of retained clusters.
	NbClones float64

	// ClonalProp is a percentage of mutations that belong to the cluster
	// with the highest cell fraction.
	ClonalProp float64

	// SmallestVAF is the smallest cell fraction among retained clusters.
	SmallestVAF float64

	// ShannonIndex is the Shannon diversity of cluster size proportions.
	ShannonIndex float64

	// MostPopulatedCloneVAF is the cell fraction of the largest cluster.
	MostPopulatedCloneVAF float64
}

// Missing returns a Summary where every statistic is NaN.
func Missing() Summary {
	nan := math.NaN()
	return Summary{
		NbClones:              nan,
		ClonalProp:            nan,
		SmallestVAF:           nan,
		ShannonIndex:          nan,
		MostPopulatedCloneVAF: nan,
	}
}

// Values returns statistics in the same order as StatNames.
func (s Summary) Values() []float64 {
	return []float64{
		s.NbClones,
		s.ClonalProp,
		s.SmallestVAF,
		s.ShannonIndex,
		s.MostPopulatedCloneVAF,
	}
}

// IsMissing is true if the summary was not computed.
func (s Summary) IsMissing() bool {
	return math.IsNaN(s.NbClones)
}
