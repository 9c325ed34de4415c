package ithtable

import (
	"github.com/gnames/ithtable/internal/ent/clinical"
	"github.com/gnames/ithtable/internal/ent/feature"
	"github.com/gnames/ithtable/internal/ent/purity"
)

func (it *ithtable) addClinical(tbl *feature.Table, l clinical.Loader) error {
	ps, err := l.Patients(it.cfg.CancerLocs)
	if err != nil {
		return err
	}
	tbl.AddColumns(colVitalStatus, colSurvivalDays, colAge, colCancerLoc)
	for _, p := range ps {
		if _, ok := tbl.Row(p.ID); ok {
			continue
		}
		r := tbl.AddRow(p.ID)
		r.SetFloat(colVitalStatus, p.VitalStatus)
		r.SetFloat(colSurvivalDays, p.SurvivalDays)
		r.SetInt(colAge, p.AgeAtDiagnosis)
		r.Set(colCancerLoc, p.CancerLoc)
	}
	return nil
}

func (it *ithtable) addPurity(tbl *feature.Table, l purity.Loader) error {
	ascat, names, err := l.ASCAT(it.cfg.CancerLocs)
	if err != nil {
		return err
	}
	addEstimates(tbl, ascat, nil)
	tbl.AddColumns(colSampleID)
	for _, r := range tbl.Rows() {
		if est, ok := ascat.ByPatient[r.PatientID]; ok {
			r.Set(colSampleID, est.SampleID)
		}
	}

	abs, err := l.Absolute()
	if err != nil {
		return err
	}
	cols := make([]string, len(abs.Columns))
	for i, c := range abs.Columns {
		cols[i] = c
		if tbl.HasColumn(c) {
			cols[i] = prefixAbsoluteCol + c
		}
	}
	addEstimates(tbl, abs, cols)

	segs, err := l.Segments(names)
	if err != nil {
		return err
	}
	nd := purity.NonDiploidFraction(segs)
	tbl.AddColumns(colNonDiploid)
	for _, r := range tbl.Rows() {
		if v, ok := nd[r.PatientID]; ok {
			r.SetFloat(colNonDiploid, v)
		}
	}

	return it.addCohorts(tbl, l)
}

// addEstimates copies fields of estimates to rows of their patients. If
// cols is nil, original column names are used.
func addEstimates(tbl *feature.Table, est purity.Estimates, cols []string) {
	if cols == nil {
		cols = est.Columns
	}
	tbl.AddColumns(cols...)
	for _, r := range tbl.Rows() {
		e, ok := est.ByPatient[r.PatientID]
		if !ok {
			continue
		}
		for i, c := range cols {
			if i < len(e.Fields) {
				r.Set(c, e.Fields[i])
			}
		}
	}
}

// addCohorts keeps only patients with protected mutation calls and adds
// mutation counts and MATH scores of both cohorts.
func (it *ithtable) addCohorts(tbl *feature.Table, l purity.Loader) error {
	ms, err := l.Mutations(it.cfg.ProtectedCohort)
	if err != nil {
		return err
	}
	protected := purity.NewCohort(ms)

	ms, err = l.Mutations(it.cfg.PublicCohort)
	if err != nil {
		return err
	}
	public := purity.NewCohort(ms)

	tbl.Retain(func(r *feature.Row) bool {
		_, ok := protected.Counts[r.PatientID]
		return ok
	})

	tbl.AddColumns(colMutProtected, colMutPublic)
	for _, r := range tbl.Rows() {
		r.SetInt(colMutProtected, protected.Counts[r.PatientID])
		if n, ok := public.Counts[r.PatientID]; ok {
			r.SetInt(colMutPublic, n)
		}
	}

	tbl.AddColumns(colMathProtected, colMathCNProtect, colMathPublic, colMathCNPublic)
	for _, r := range tbl.Rows() {
		id := r.PatientID
		setIf(r, colMathProtected, protected.Math, id)
		setIf(r, colMathCNProtect, protected.MathCN, id)
		setIf(r, colMathPublic, public.Math, id)
		setIf(r, colMathCNPublic, public.MathCN, id)
	}
	return nil
}

func setIf(r *feature.Row, col string, m map[string]float64, id string) {
	if v, ok := m[id]; ok {
		r.SetFloat(col, v)
	}
}
