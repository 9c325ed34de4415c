package runtime

// Source provides scheduler records and the assignment of patients to
// array indices.
type Source interface {
	// Records returns finished array jobs found in scheduler logs. Jobs
	// that are not part of an array are omitted.
	Records() ([]JobRecord, error)

	// Batches returns array index of every patient.
	Batches() (map[string]int, error)
}
