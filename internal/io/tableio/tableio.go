// Package tableio saves the feature table to a tab-separated file or to
// a PostgreSQL table.
package tableio

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnsys"
	"github.com/gnames/ithtable/internal/ent/feature"
)

type tsv struct {
	path string
}

// NewTSV creates a feature.Writer that saves the table to path.
func NewTSV(path string) feature.Writer {
	return &tsv{path: path}
}

// Write saves the table, overwriting previous content of the file.
func (t *tsv) Write(tbl *feature.Table) error {
	err := gnsys.MakeDir(filepath.Dir(t.path))
	if err != nil {
		slog.Error("Cannot create output directory", "path", t.path, "error", err)
		return err
	}
	f, err := os.Create(t.path)
	if err != nil {
		slog.Error("Cannot create output file", "path", t.path, "error", err)
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	err = w.WriteAll(tbl.Records())
	if err != nil {
		slog.Error("Cannot write output file", "path", t.path, "error", err)
		return err
	}
	slog.Info("Saved feature table", "path", t.path,
		"rows", tbl.Len(), "columns", len(tbl.Columns()))
	return f.Sync()
}
