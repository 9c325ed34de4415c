package ithtable_test

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/gnames/ithtable/internal/ent/clinical"
	"github.com/gnames/ithtable/internal/ent/feature"
	"github.com/gnames/ithtable/internal/ent/immune"
	"github.com/gnames/ithtable/internal/ent/ith"
	"github.com/gnames/ithtable/internal/ent/purity"
	"github.com/gnames/ithtable/internal/ent/runtime"
	ithtable "github.com/gnames/ithtable/pkg"
	"github.com/gnames/ithtable/pkg/config"
)

const (
	p1 = "TCGA-AA-0001"
	p2 = "TCGA-AA-0002"
	p3 = "TCGA-AA-0003"
	t0 = 1_530_000_000
)

var _ = Describe("ITHTable", func() {
	var (
		dir string
		src ithtable.Sources
		tbl *feature.Table
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "ithtable")
		Expect(err).To(BeNil())

		touch(filepath.Join(dir, p1+"_protected.done"), t0+16*3600)
		touch(filepath.Join(dir, p1+"_public.done"), t0+21*3600)

		src = ithtable.Sources{
			Clinical: clinicalFake{},
			Purity:   purityFake{},
			ITH:      []ith.Reader{ithFake{dir: dir}},
			Runtime: runtimeFake{
				recs: []runtime.JobRecord{
					{JobID: "100[1]", JobNb: "100", BatchNb: 1, Start: t0, End: t0 + 16*3600},
					{JobID: "200[1]", JobNb: "200", BatchNb: 1, Start: t0 + 20*3600, End: t0 + 21*3600},
				},
				batches: map[string]int{p1: 1, p2: 2},
			},
			Immune: immuneFake{},
		}
		cfg := config.New(
			config.OptWorkDir(dir),
			config.OptDatasets([]string{"protected", "public"}),
			config.OptJobsNum(2),
			config.OptCrosswalkPath("saved_crosswalk"),
		)
		tbl, err = ithtable.New(cfg).Build(src)
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("keeps one row per patient with protected mutations", func() {
		Expect(tbl.PatientIDs()).To(Equal([]string{p1, p2}))
	})

	It("joins clinical and purity data", func() {
		r, ok := tbl.Row(p1)
		Expect(ok).To(BeTrue())
		Expect(r.Get("binary_vital_status")).To(Equal("1"))
		Expect(r.Get("cancer_loc")).To(Equal("BRCA"))
		Expect(r.Get("sample_id")).To(Equal(p1 + "-01A"))
		Expect(r.Get("purity")).To(Equal("0.7"))
		Expect(r.Get("absolute_purity")).To(Equal("0.65"))
		Expect(r.Get("perc_non_diploid")).To(Equal("0"))
		Expect(r.Get("mutation_count_protected")).To(Equal("2"))
		Expect(r.Get("mutation_count_public")).To(Equal("1"))

		r, _ = tbl.Row(p2)
		Expect(r.Get("mutation_count_public")).To(Equal(""))
		Expect(r.Get("perc_non_diploid")).To(Equal("0.5"))
	})

	It("summarizes ITH results", func() {
		r, _ := tbl.Row(p1)
		Expect(r.Get("pyclone_protected_clonal_prop")).To(Equal("60"))
		Expect(r.Get("pyclone_protected_smallest_vaf")).To(Equal("0.3"))

		r, _ = tbl.Row(p2)
		Expect(r.Get("pyclone_protected_clonal_prop")).To(Equal(""))
		Expect(r.Get("pyclone_protected_shannon_index")).To(Equal(""))
	})

	It("attributes runtimes and drops slow clone counts", func() {
		r, _ := tbl.Row(p1)
		Expect(r.Get("pyclone_protected_runtime")).To(Equal("57600"))
		Expect(r.Get("pyclone_protected_nb_clones")).To(Equal(""))
		Expect(r.Get("pyclone_protected_clonal_prop")).To(Equal("60"))
		Expect(r.Get("line_nb")).To(Equal("1"))

		Expect(r.Get("pyclone_public_runtime")).To(Equal("3600"))
		Expect(r.Get("pyclone_public_nb_clones")).To(Equal("2"))
		Expect(r.Get("pyclone_public_clonal_prop")).To(Equal("60"))

		r, _ = tbl.Row(p2)
		Expect(r.Get("pyclone_protected_timestamp")).To(Equal(""))
		Expect(r.Get("pyclone_protected_runtime")).To(Equal(""))
	})

	It("adds immune scores by sample", func() {
		r, _ := tbl.Row(p1)
		Expect(r.Get("T cells")).To(Equal("3"))
		r, _ = tbl.Row(p2)
		Expect(r.Get("T cells")).To(Equal(""))
		Expect(tbl.HasColumn("T cells")).To(BeTrue())
	})

	It("saves the crosswalk", func() {
		_, err := os.Stat(filepath.Join(dir, "saved_crosswalk"))
		Expect(err).To(BeNil())
	})
})

func touch(path string, sec int64) {
	Expect(os.WriteFile(path, []byte("done"), 0644)).To(Succeed())
	mt := time.Unix(sec, 0)
	Expect(os.Chtimes(path, mt, mt)).To(Succeed())
}

type clinicalFake struct{}

func (clinicalFake) Patients(_ []string) ([]clinical.Patient, error) {
	return []clinical.Patient{
		{ID: p1, CancerLoc: "BRCA", VitalStatus: 1, SurvivalDays: 305, AgeAtDiagnosis: 50},
		{ID: p2, CancerLoc: "BRCA", VitalStatus: 0, SurvivalDays: 61, AgeAtDiagnosis: 61},
		{ID: p3, CancerLoc: "BRCA", VitalStatus: 0, SurvivalDays: 30.5, AgeAtDiagnosis: 44},
		{ID: p1, CancerLoc: "LUAD", VitalStatus: 0, SurvivalDays: 1, AgeAtDiagnosis: 1},
	}, nil
}

type purityFake struct{}

func (purityFake) ASCAT(_ []string) (purity.Estimates, map[string]string, error) {
	var res purity.Estimates
	res.Columns = []string{"name", "barcodeTumour", "purity"}
	for i, p := range []string{p1, p2, p3} {
		name := fmt.Sprintf("s%d", i+1)
		res.Add(purity.Estimate{
			PatientID: p,
			SampleID:  p + "-01A",
			Fields:    []string{name, p + "-01A-11D", "0.7"},
		})
	}
	return res, map[string]string{"s1": p1, "s2": p2, "s3": p3}, nil
}

func (purityFake) Absolute() (purity.Estimates, error) {
	var res purity.Estimates
	res.Columns = []string{"Sample ID", "purity"}
	res.Add(purity.Estimate{PatientID: p1, Fields: []string{p1 + "-01", "0.65"}})
	return res, nil
}

func (purityFake) Segments(_ map[string]string) ([]purity.Segment, error) {
	return []purity.Segment{
		{Participant: "s1", PatientID: p1, Start: 1, Stop: 100, Major: 1, Minor: 1},
		{Participant: "s2", PatientID: p2, Start: 1, Stop: 100, Major: 1, Minor: 1},
		{Participant: "s2", PatientID: p2, Start: 1, Stop: 100, Major: 2, Minor: 1},
	}, nil
}

func (purityFake) Mutations(cohort string) ([]purity.Mutation, error) {
	if cohort == "public" {
		return []purity.Mutation{{PatientID: p1, MutationID: "m1", VAF: 0.4, VAFCN: 0.4}}, nil
	}
	return []purity.Mutation{
		{PatientID: p1, MutationID: "m1", VAF: 0.4, VAFCN: 0.4},
		{PatientID: p1, MutationID: "m2", VAF: 0.2, VAFCN: 0.2},
		{PatientID: p2, MutationID: "m3", VAF: 0.3, VAFCN: 0.3},
	}, nil
}

type ithFake struct {
	dir string
}

func (ithFake) Method() string { return "pyclone" }

func (f ithFake) SummaryFile(patient, _ string) string {
	return filepath.Join(f.dir, patient+".tsv")
}

func (f ithFake) TimestampFile(patient, dataset string) string {
	return filepath.Join(f.dir, patient+"_"+dataset+".done")
}

func (ithFake) Clusters(patient, _ string) ([]ith.Cluster, error) {
	if patient != p1 {
		return nil, os.ErrNotExist
	}
	return []ith.Cluster{
		{Name: "0", Size: 60, CellFraction: 0.9},
		{Name: "1", Size: 40, CellFraction: 0.3},
		{Name: "2", Size: 3, CellFraction: 0.1},
	}, nil
}

type runtimeFake struct {
	recs    []runtime.JobRecord
	batches map[string]int
}

func (f runtimeFake) Records() ([]runtime.JobRecord, error) { return f.recs, nil }

func (f runtimeFake) Batches() (map[string]int, error) { return f.batches, nil }

type immuneFake struct{}

func (immuneFake) Crosswalk() (immune.Crosswalk, error) {
	return immune.Crosswalk{
		{Signature: immune.Signature{CellType: "T cells", EntrezGene: "1"}, EnsemblGene: "ENSG1"},
		{Signature: immune.Signature{CellType: "T cells", EntrezGene: "2"}, EnsemblGene: "ENSG2"},
	}, nil
}

func (immuneFake) Expression(_ string) (immune.Expression, error) {
	return immune.Expression{
		Samples: []string{p1 + "-01A-11R-A000-07"},
		Genes:   []string{"ENSG1", "ENSG2"},
		Values:  [][]float64{{2}, {4}},
	}, nil
}

func (immuneFake) SaveCrosswalk(path string, _ immune.Crosswalk) error {
	return os.WriteFile(path, []byte("x"), 0644)
}
