// Package purityio reads purity estimates, copy-number segments and
// mutation calls.
package purityio

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/gnames/ithtable/internal/ent/feature"
	"github.com/gnames/ithtable/internal/ent/purity"
	"github.com/gnames/ithtable/internal/io/fileio"
	"github.com/xuri/excelize/v2"
)

const (
	patientIDLen = 12
	sampleIDLen  = 16

	// absolutePreamble is the number of title rows of the ABSOLUTE
	// spreadsheet.
	absolutePreamble = 3
)

// Paths of purity related inputs relative to the working directory.
var (
	ASCATPath    = filepath.Join("data", "pancancer", "liftover_ASCAT_TCGA", "filtered.combined.acf.ploidy.txt")
	SegmentsPath = filepath.Join("data", "pancancer", "liftover_ASCAT_TCGA", "cnasHg38.tsv")
	AbsolutePath = filepath.Join("external_data", "ncomms9971-s2.xlsx")
)

// MutationsPath returns the mutation table of a cohort.
func MutationsPath(cohort string) string {
	name := fmt.Sprintf("useful_final_%s_merge_cnv_purity.csv", cohort)
	return filepath.Join("tmp", name)
}

type purityio struct {
	dir string
}

// New creates purity.Loader that resolves inputs against dir.
func New(dir string) purity.Loader {
	return &purityio{dir: dir}
}

func (p *purityio) path(rel string) string {
	return filepath.Join(p.dir, rel)
}

func prefix(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// ASCAT reads allele-specific purity estimates.
func (p *purityio) ASCAT(locs []string) (purity.Estimates, map[string]string, error) {
	var res purity.Estimates
	names := make(map[string]string)
	tbl, err := fileio.ReadTable(p.path(ASCATPath), '\t', 0)
	if err != nil {
		return res, nil, err
	}
	idx, err := tbl.Cols("name", "tissue", "barcodeTumour", "cancer_type")
	if err != nil {
		return res, nil, err
	}

	relevant := make(map[string]struct{}, len(locs))
	for _, l := range locs {
		relevant[l] = struct{}{}
	}

	res.Columns = tbl.Header
	for _, row := range tbl.Rows {
		names[fileio.Field(row, idx[0])] = fileio.Field(row, idx[1])
		if _, ok := relevant[fileio.Field(row, idx[3])]; !ok {
			continue
		}
		fields := make([]string, len(tbl.Header))
		copy(fields, row)
		res.Add(purity.Estimate{
			PatientID: fileio.Field(row, idx[1]),
			SampleID:  prefix(fileio.Field(row, idx[2]), sampleIDLen),
			Fields:    fields,
		})
	}
	slog.Info("Loaded ASCAT estimates", "patients", len(res.ByPatient))
	return res, names, nil
}

// Absolute reads the first sheet of the ABSOLUTE spreadsheet.
func (p *purityio) Absolute() (purity.Estimates, error) {
	var res purity.Estimates
	f, err := excelize.OpenFile(p.path(AbsolutePath))
	if err != nil {
		slog.Error("Cannot open spreadsheet", "path", AbsolutePath, "error", err)
		return res, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return res, fmt.Errorf("%s has no sheets", AbsolutePath)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		slog.Error("Cannot read spreadsheet", "path", AbsolutePath, "error", err)
		return res, err
	}
	if len(rows) <= absolutePreamble {
		return res, fmt.Errorf("%s has no header", AbsolutePath)
	}
	tbl, err := fileio.NewTable(rows[absolutePreamble:])
	if err != nil {
		return res, err
	}
	idx, err := tbl.Col("Sample ID")
	if err != nil {
		return res, err
	}

	res.Columns = tbl.Header
	for _, row := range tbl.Rows {
		smp := fileio.Field(row, idx)
		if smp == "" {
			continue
		}
		fields := make([]string, len(tbl.Header))
		copy(fields, row)
		res.Add(purity.Estimate{
			PatientID: prefix(smp, patientIDLen),
			SampleID:  smp,
			Fields:    fields,
		})
	}
	slog.Info("Loaded ABSOLUTE estimates", "patients", len(res.ByPatient))
	return res, nil
}

// Segments reads copy-number segments of known samples.
func (p *purityio) Segments(samples map[string]string) ([]purity.Segment, error) {
	tbl, err := fileio.ReadTable(p.path(SegmentsPath), '\t', 0)
	if err != nil {
		return nil, err
	}
	idx, err := tbl.Cols("participant", "start", "stop", "major", "minor")
	if err != nil {
		return nil, err
	}

	var res []purity.Segment
	for i, row := range tbl.Rows {
		part := fileio.Field(row, idx[0])
		patient, ok := samples[part]
		if !ok {
			continue
		}
		seg := purity.Segment{Participant: part, PatientID: patient}
		var nums [4]float64
		for j := range nums {
			nums[j], err = strconv.ParseFloat(fileio.Field(row, idx[j+1]), 64)
			if err != nil {
				slog.Error("Cannot parse segment", "line", i+2, "error", err)
				return nil, err
			}
		}
		seg.Start, seg.Stop = int64(nums[0]), int64(nums[1])
		seg.Major, seg.Minor = int(nums[2]), int(nums[3])
		res = append(res, seg)
	}
	slog.Info("Loaded copy-number segments", "segments", len(res))
	return res, nil
}

// Mutations reads mutation calls of a cohort.
func (p *purityio) Mutations(cohort string) ([]purity.Mutation, error) {
	tbl, err := fileio.ReadTable(p.path(MutationsPath(cohort)), '\t', 0)
	if err != nil {
		return nil, err
	}
	idx, err := tbl.Cols("patient_id", "mutation_id.1", "vaf", "vaf_cn")
	if err != nil {
		return nil, err
	}

	res := make([]purity.Mutation, len(tbl.Rows))
	for i, row := range tbl.Rows {
		res[i] = purity.Mutation{
			PatientID:  fileio.Field(row, idx[0]),
			MutationID: fileio.Field(row, idx[1]),
			VAF:        feature.ParseFloat(fileio.Field(row, idx[2])),
			VAFCN:      feature.ParseFloat(fileio.Field(row, idx[3])),
		}
	}
	slog.Info("Loaded mutations", "cohort", cohort, "mutations", len(res))
	return res, nil
}
