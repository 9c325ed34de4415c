package ith

// Reader is implemented by every ITH method. It knows where the method
// keeps its results and how to convert them into clusters.
type Reader interface {
	// Method returns the name of the ITH method, as used in column names.
	Method() string

	// Clusters reads the result of the method for a patient and a dataset
	// and returns clusters after method-specific adaptation but before the
	// common size filter.
	Clusters(patient, dataset string) ([]Cluster, error)

	// SummaryFile is the path to the file Clusters reads.
	SummaryFile(patient, dataset string) string

	// TimestampFile is the path to the file whose modification time marks
	// the end of the method's run. It is empty for methods that did not
	// run as scheduler array jobs.
	TimestampFile(patient, dataset string) string
}
