package feature

// Writer saves the feature table somewhere.
type Writer interface {
	// Write saves all rows and columns of the table.
	Write(tbl *Table) error
}
