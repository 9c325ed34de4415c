// Package runtime attributes wall-clock runtimes of scheduler array jobs
// to patients, using modification times of the files the jobs produced.
package runtime

import "math"

// JobRecord is a finished array job as recorded by the scheduler epilogue.
type JobRecord struct {
	// JobID is the full identifier of the job, for example `1234[5]`.
	JobID string

	// JobName is the name given to the job at submission.
	JobName string

	// Start is the epoch time of the job's start.
	Start int64

	// End is the epoch time of the job's end.
	End int64

	// ExitStatus is the exit code of the job.
	ExitStatus int

	// JobNb is the identifier of the whole array, the part of JobID before
	// the brackets.
	JobNb string

	// BatchNb is the index of the job inside the array.
	BatchNb int
}

// Runtime returns the duration of the job in seconds.
func (r JobRecord) Runtime() int64 {
	return r.End - r.Start
}

// Contains checks if t is inside of [Start, End+tolerance].
func (r JobRecord) Contains(t, tolerance float64) bool {
	return t >= float64(r.Start) && t <= float64(r.End)+tolerance
}

// Timestamp is the modification time of a patient's result file.
type Timestamp struct {
	// PatientID is the patient's barcode.
	PatientID string

	// Time is epoch seconds, NaN if the file does not exist.
	Time float64
}

// Candidate is a job record that could have produced a patient's file.
type Candidate struct {
	PatientID string
	JobRecord
}

// Reconciler matches timestamps with job records.
type Reconciler struct {
	tolerance float64
	byBatch   map[int][]JobRecord
	batches   map[string]int
}

// NewReconciler creates a Reconciler from job records and from the
// patient to array index table.
func NewReconciler(
	recs []JobRecord,
	batches map[string]int,
	tolerance float64,
) *Reconciler {
	res := Reconciler{
		tolerance: tolerance,
		byBatch:   make(map[int][]JobRecord),
		batches:   batches,
	}
	for _, r := range recs {
		res.byBatch[r.BatchNb] = append(res.byBatch[r.BatchNb], r)
	}
	return &res
}

// Candidates returns every job record whose array index belongs to the
// patient and whose time interval contains the patient's timestamp.
func (rc *Reconciler) Candidates(ts []Timestamp) []Candidate {
	var res []Candidate
	for _, t := range ts {
		if math.IsNaN(t.Time) {
			continue
		}
		batch, ok := rc.batches[t.PatientID]
		if !ok {
			continue
		}
		for _, r := range rc.byBatch[batch] {
			if r.Contains(t.Time, rc.tolerance) {
				res = append(res, Candidate{PatientID: t.PatientID, JobRecord: r})
			}
		}
	}
	return res
}

// MajorityJobNb returns the most frequent array identifier among
// candidates. A tie goes to the identifier seen first.
func MajorityJobNb(cs []Candidate) (string, bool) {
	if len(cs) == 0 {
		return "", false
	}
	counts := make(map[string]int)
	var order []string
	for _, c := range cs {
		if _, ok := counts[c.JobNb]; !ok {
			order = append(order, c.JobNb)
		}
		counts[c.JobNb]++
	}
	res := order[0]
	for _, jn := range order[1:] {
		if counts[jn] > counts[res] {
			res = jn
		}
	}
	return res, true
}

// Runtimes returns runtime in seconds for every patient that has a
// candidate from the majority array. If a patient has several such
// candidates, the first one wins. Patients without a match are absent
// from the result.
func (rc *Reconciler) Runtimes(ts []Timestamp) map[string]float64 {
	res := make(map[string]float64)
	cs := rc.Candidates(ts)
	maj, ok := MajorityJobNb(cs)
	if !ok {
		return res
	}
	for _, c := range cs {
		if c.JobNb != maj {
			continue
		}
		if _, ok := res[c.PatientID]; ok {
			continue
		}
		res[c.PatientID] = float64(c.Runtime())
	}
	return res
}
