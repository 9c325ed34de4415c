package ithio

import (
	"github.com/gnames/ithtable/internal/ent/ith"
)

// pyclone keeps a cluster table with `size` and `mean` columns.
type pyclone struct{ base }

func (pyclone) Method() string { return PyClone }

func (r pyclone) SummaryFile(patient, dataset string) string {
	return r.resultPath(patient, PyClone, dataset, "tables", "cluster.tsv")
}

func (r pyclone) TimestampFile(patient, dataset string) string {
	return r.SummaryFile(patient, dataset)
}

func (r pyclone) Clusters(patient, dataset string) ([]ith.Cluster, error) {
	return readSizeTable(r.SummaryFile(patient, dataset), "cluster_id", "size", "mean")
}

// phylowgs keeps a headerless table of cluster id, size and cellular
// prevalence for the best tree.
type phylowgs struct{ base }

func (phylowgs) Method() string { return PhyloWGS }

func (r phylowgs) SummaryFile(patient, dataset string) string {
	return r.resultPath(patient, PhyloWGS, dataset, "outputs", "1C.txt")
}

func (r phylowgs) TimestampFile(patient, dataset string) string {
	return r.SummaryFile(patient, dataset)
}

func (r phylowgs) Clusters(patient, dataset string) ([]ith.Cluster, error) {
	return readPositional(r.SummaryFile(patient, dataset), splitTab)
}

// sciclone keeps one row per mutation with its cluster label and VAF in
// percents.
type sciclone struct{ base }

func (sciclone) Method() string { return SciClone }

func (r sciclone) SummaryFile(patient, dataset string) string {
	return r.resultPath(patient, SciClone, dataset, "clusters1")
}

func (r sciclone) TimestampFile(patient, dataset string) string {
	return r.SummaryFile(patient, dataset)
}

func (r sciclone) Clusters(patient, dataset string) ([]ith.Cluster, error) {
	return readLabelled(r.SummaryFile(patient, dataset))
}

// baseline writes a cluster table with `cluster_size` and `mean` columns,
// the per-mutation assignment file is written last.
type baseline struct{ base }

func (baseline) Method() string { return Baseline }

func (r baseline) SummaryFile(patient, dataset string) string {
	return r.resultPath(patient, Baseline, dataset, "cluster_assignment_bis.csv")
}

func (r baseline) TimestampFile(patient, dataset string) string {
	return r.resultPath(patient, Baseline, dataset, "cluster_assignment_for_each_mutation.csv")
}

func (r baseline) Clusters(patient, dataset string) ([]ith.Cluster, error) {
	return readSizeTable(r.SummaryFile(patient, dataset), "cluster", "cluster_size", "mean")
}

// expands assigns every mutation to a subpopulation identified by its
// cellular frequency (SP column).
type expands struct{ base }

func (expands) Method() string { return Expands }

func (r expands) SummaryFile(patient, dataset string) string {
	return r.resultPath(patient, Expands, dataset, patient+"__"+dataset+".sps")
}

func (r expands) TimestampFile(patient, dataset string) string {
	return r.SummaryFile(patient, dataset)
}

func (r expands) Clusters(patient, dataset string) ([]ith.Cluster, error) {
	return readAssignments(r.SummaryFile(patient, dataset))
}

// csr keeps a headerless summary of cluster name, number of mutations and
// cellular prevalence. CSR did not run as a scheduler array, so it is not
// timed.
type csr struct{ base }

func (csr) Method() string { return CSR }

func (r csr) SummaryFile(patient, dataset string) string {
	return r.resultPath(patient, CSR, dataset, "output", "summary_table.txt")
}

func (csr) TimestampFile(_, _ string) string {
	return ""
}

func (r csr) Clusters(patient, dataset string) ([]ith.Cluster, error) {
	return readPositional(r.SummaryFile(patient, dataset), splitSpace)
}
