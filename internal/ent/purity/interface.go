package purity

// Estimate is a row of a purity table kept with all its original fields.
type Estimate struct {
	// PatientID is the 12-character patient barcode.
	PatientID string

	// SampleID is the 16-character sample barcode, if known.
	SampleID string

	// Fields are aligned with Estimates.Columns.
	Fields []string
}

// Estimates is a purity table indexed by patient. Only the first row of
// every patient is kept.
type Estimates struct {
	// Columns are the names of the original columns.
	Columns []string

	// ByPatient contains one Estimate per patient.
	ByPatient map[string]Estimate
}

// Add keeps an estimate unless the patient already has one.
func (e *Estimates) Add(est Estimate) {
	if e.ByPatient == nil {
		e.ByPatient = make(map[string]Estimate)
	}
	if _, ok := e.ByPatient[est.PatientID]; ok {
		return
	}
	e.ByPatient[est.PatientID] = est
}

// Loader reads purity, copy-number and mutation data.
type Loader interface {
	// ASCAT returns allele-specific purity and ploidy estimates of the
	// given cancer types, together with patient IDs of all ASCAT samples
	// regardless of cancer type, keyed by sample name.
	ASCAT(cancerLocs []string) (Estimates, map[string]string, error)

	// Absolute returns ABSOLUTE/consensus purity estimates.
	Absolute() (Estimates, error)

	// Segments returns copy-number segments of the given samples. The
	// map assigns sample names to patient IDs.
	Segments(samples map[string]string) ([]Segment, error)

	// Mutations returns mutation calls of a cohort (protected or public).
	Mutations(cohort string) ([]Mutation, error)
}
