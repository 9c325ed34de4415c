package fileio

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table is a delimited text file with a header line.
type Table struct {
	Header []string
	Rows   [][]string
	idx    map[string]int
}

// ReadRecords reads delimited records, skipping the first skip lines.
// Rows may have different number of fields.
func ReadRecords(r io.Reader, sep rune, skip int) ([][]string, error) {
	br := bufio.NewReader(r)
	for i := 0; i < skip; i++ {
		_, err := br.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
	cr := csv.NewReader(br)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false
	return cr.ReadAll()
}

// ReadTable opens a file and reads it as a Table. The first line after
// skipped lines is the header.
func ReadTable(path string, sep rune, skip int) (*Table, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := ReadRecords(f, sep, skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewTable(recs)
}

// NewTable creates a table out of records, the first one being the header.
func NewTable(recs [][]string) (*Table, error) {
	if len(recs) == 0 {
		return nil, errors.New("table has no header")
	}
	res := Table{
		Header: recs[0],
		Rows:   recs[1:],
		idx:    make(map[string]int, len(recs[0])),
	}
	for i, h := range res.Header {
		h = strings.TrimSpace(h)
		res.Header[i] = h
		if _, ok := res.idx[h]; !ok {
			res.idx[h] = i
		}
	}
	return &res, nil
}

// Col returns the index of a column.
func (t *Table) Col(name string) (int, error) {
	i, ok := t.idx[name]
	if !ok {
		return 0, fmt.Errorf("column %q not found", name)
	}
	return i, nil
}

// Cols returns indices of several columns.
func (t *Table) Cols(names ...string) ([]int, error) {
	res := make([]int, len(names))
	for i, n := range names {
		idx, err := t.Col(n)
		if err != nil {
			return nil, err
		}
		res[i] = idx
	}
	return res, nil
}

// Field returns a field of a row, or an empty string if the row is too
// short.
func Field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
