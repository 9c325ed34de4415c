// Package model describes database records kept alongside exported
// feature tables.
package model

import "time"

// Run is a record of a feature table export.
type Run struct {
	// ID is an autoincremented identifier of the run.
	ID uint `gorm:"primary_key"`

	// FeatureTable is the name of the exported table.
	FeatureTable string `gorm:"type:varchar(255);index"`

	// Version of ithtable that created the table.
	Version string `gorm:"type:varchar(50)"`

	// RowsNum is the number of patients in the table.
	RowsNum int

	// ColumnsNum is the number of columns in the table.
	ColumnsNum int

	// CancerLocs lists processed cancer types, comma-separated.
	CancerLocs string

	// CreatedAt is the time of the export.
	CreatedAt time.Time
}

// Model creates and updates tables with run metadata.
type Model interface {
	// Migrate creates tables in the database.
	Migrate() error

	// SaveRun adds a run record.
	SaveRun(Run) error
}
