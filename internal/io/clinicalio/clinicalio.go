// Package clinicalio reads patient-level clinical tables, one per cancer
// type.
package clinicalio

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gnames/ithtable/internal/ent/clinical"
	"github.com/gnames/ithtable/internal/io/fileio"
)

// preamble is the number of comment lines before the header.
const preamble = 4

type clinicalio struct {
	dir string
}

// New creates a clinical.Loader that reads files from
// `<dir>/data/<LOC>/clinical/`.
func New(dir string) clinical.Loader {
	return &clinicalio{dir: dir}
}

// Path returns location of a clinical table of a cancer type.
func Path(dir, loc string) string {
	return filepath.Join(dir, "data", loc, "clinical", "data_bcr_clinical_data_patient.txt")
}

// Patients reads and unions clinical tables of all cancer types.
func (c *clinicalio) Patients(locs []string) ([]clinical.Patient, error) {
	var res []clinical.Patient
	for _, loc := range locs {
		ps, err := c.patients(loc)
		if err != nil {
			return nil, fmt.Errorf("clinical data of %s: %w", loc, err)
		}
		slog.Info("Loaded clinical data", "cancer", loc, "patients", len(ps))
		res = append(res, ps...)
	}
	return res, nil
}

func (c *clinicalio) patients(loc string) ([]clinical.Patient, error) {
	tbl, err := fileio.ReadTable(Path(c.dir, loc), '\t', preamble)
	if err != nil {
		return nil, err
	}
	idx, err := tbl.Cols("PATIENT_ID", "OS_STATUS", "OS_MONTHS", "DAYS_TO_BIRTH")
	if err != nil {
		return nil, err
	}

	res := make([]clinical.Patient, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		id := fileio.Field(row, idx[0])
		days, err := clinical.SurvivalDays(fileio.Field(row, idx[2]))
		if errors.Is(err, clinical.ErrNotAvailable) {
			continue
		}
		if err != nil {
			slog.Error("Cannot convert OS_MONTHS", "patient", id, "error", err)
			return nil, err
		}
		age, err := clinical.AgeAtDiagnosis(fileio.Field(row, idx[3]))
		if errors.Is(err, clinical.ErrNotAvailable) {
			continue
		}
		if err != nil {
			slog.Error("Cannot convert DAYS_TO_BIRTH", "patient", id, "error", err)
			return nil, err
		}
		p := clinical.Patient{
			ID:             id,
			CancerLoc:      loc,
			VitalStatus:    clinical.VitalStatus(fileio.Field(row, idx[1])),
			SurvivalDays:   days,
			AgeAtDiagnosis: age,
		}
		res = append(res, p)
	}
	return res, nil
}
