// Package feature provides the denormalized feature table: one row per
// patient with named columns accumulated by pipeline stages.
package feature

import (
	"math"
	"strconv"
	"strings"
)

// PatientCol is the name of the key column.
const PatientCol = "PATIENT_ID"

// Table keeps rows in insertion order and columns in the order they were
// first set.
type Table struct {
	columns   []string
	colIdx    map[string]struct{}
	rows      []*Row
	byPatient map[string]*Row
}

// Row is a record of one patient.
type Row struct {
	PatientID string
	cells     map[string]string
	tbl       *Table
}

// New creates an empty Table.
func New() *Table {
	res := Table{
		colIdx:    make(map[string]struct{}),
		byPatient: make(map[string]*Row),
	}
	res.AddColumns(PatientCol)
	return &res
}

// AddColumns registers columns, so they appear in the output even when no
// row has a value for them.
func (t *Table) AddColumns(names ...string) {
	for _, n := range names {
		if _, ok := t.colIdx[n]; ok {
			continue
		}
		t.colIdx[n] = struct{}{}
		t.columns = append(t.columns, n)
	}
}

// HasColumn checks if a column is registered.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIdx[name]
	return ok
}

// Columns returns column names in order.
func (t *Table) Columns() []string {
	return t.columns
}

// AddRow creates a row for a patient. If the patient already has a row,
// it is returned instead.
func (t *Table) AddRow(patientID string) *Row {
	if r, ok := t.byPatient[patientID]; ok {
		return r
	}
	r := &Row{
		PatientID: patientID,
		cells:     map[string]string{PatientCol: patientID},
		tbl:       t,
	}
	t.rows = append(t.rows, r)
	t.byPatient[patientID] = r
	return r
}

// Row returns the row of a patient.
func (t *Table) Row(patientID string) (*Row, bool) {
	r, ok := t.byPatient[patientID]
	return r, ok
}

// Rows returns all rows in insertion order.
func (t *Table) Rows() []*Row {
	return t.rows
}

// Len is the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// PatientIDs returns identifiers of all rows in order.
func (t *Table) PatientIDs() []string {
	res := make([]string, len(t.rows))
	for i := range t.rows {
		res[i] = t.rows[i].PatientID
	}
	return res
}

// Retain removes rows for which keep returns false.
func (t *Table) Retain(keep func(*Row) bool) {
	rows := t.rows[:0]
	for _, r := range t.rows {
		if keep(r) {
			rows = append(rows, r)
			continue
		}
		delete(t.byPatient, r.PatientID)
	}
	t.rows = rows
}

// DedupBy removes rows that repeat a non-empty value of the column,
// keeping the first occurrence.
func (t *Table) DedupBy(col string) {
	seen := make(map[string]struct{})
	t.Retain(func(r *Row) bool {
		v := r.Get(col)
		if v == "" {
			return true
		}
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
		return true
	})
}

// Records converts the table to string records, header first.
func (t *Table) Records() [][]string {
	res := make([][]string, 0, len(t.rows)+1)
	res = append(res, t.columns)
	for _, r := range t.rows {
		rec := make([]string, len(t.columns))
		for i, c := range t.columns {
			rec[i] = r.cells[c]
		}
		res = append(res, rec)
	}
	return res
}

// Set assigns a value to a column, registering the column if needed.
func (r *Row) Set(col, val string) {
	r.tbl.AddColumns(col)
	r.cells[col] = val
}

// SetFloat assigns a number. NaN becomes an empty cell.
func (r *Row) SetFloat(col string, v float64) {
	r.Set(col, FormatFloat(v))
}

// SetInt assigns an integer.
func (r *Row) SetInt(col string, v int) {
	r.Set(col, strconv.Itoa(v))
}

// Get returns the value of a column, empty string if absent.
func (r *Row) Get(col string) string {
	return r.cells[col]
}

// Float returns the numeric value of a column, NaN if it is empty or not
// a number.
func (r *Row) Float(col string) float64 {
	return ParseFloat(r.cells[col])
}

// FormatFloat formats numbers for the output table.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseFloat reads a number from a table cell. Empty cells and NA
// markers give NaN.
func ParseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "", "NA", "NaN", "nan", "[Not Available]":
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ColumnName joins parts of a column name with underscores.
func ColumnName(parts ...string) string {
	return strings.Join(parts, "_")
}
