package ithtable

import (
	"log/slog"

	"github.com/gnames/ithtable/internal/ent/feature"
	"github.com/gnames/ithtable/internal/ent/ith"
	"github.com/gnames/ithtable/internal/ent/runtime"
	"github.com/gnames/ithtable/internal/io/fileio"
)

// addRuntimes adds completion timestamps of results and runtimes of the
// jobs that produced them. Results of jobs that ran longer than the
// ceiling lose their number of clones.
func (it *ithtable) addRuntimes(
	tbl *feature.Table,
	readers []ith.Reader,
	src runtime.Source,
) error {
	ids := tbl.PatientIDs()
	for _, r := range readers {
		for _, d := range it.cfg.Datasets {
			if len(ids) == 0 || r.TimestampFile(ids[0], d) == "" {
				continue
			}
			col := feature.ColumnName(r.Method(), d, suffixTimestamp)
			tbl.AddColumns(col)
			for _, id := range ids {
				row, _ := tbl.Row(id)
				row.SetFloat(col, fileio.ModTime(r.TimestampFile(id, d)))
			}
		}
	}

	recs, err := src.Records()
	if err != nil {
		return err
	}
	batches, err := src.Batches()
	if err != nil {
		return err
	}
	slog.Info("Read scheduler logs", "jobs", len(recs), "patients", len(batches))

	tbl.AddColumns(colLineNb)
	for _, row := range tbl.Rows() {
		if b, ok := batches[row.PatientID]; ok {
			row.SetInt(colLineNb, b)
		}
	}

	rc := runtime.NewReconciler(recs, batches, it.cfg.Tolerance)
	for _, r := range readers {
		for _, d := range it.cfg.Datasets {
			tsCol := feature.ColumnName(r.Method(), d, suffixTimestamp)
			if !tbl.HasColumn(tsCol) {
				continue
			}
			ts := make([]runtime.Timestamp, len(ids))
			for i, id := range ids {
				row, _ := tbl.Row(id)
				ts[i] = runtime.Timestamp{PatientID: id, Time: row.Float(tsCol)}
			}
			rts := rc.Runtimes(ts)

			col := feature.ColumnName(r.Method(), d, suffixRuntime)
			nbCol := feature.ColumnName(r.Method(), d, ith.StatNames[0])
			tbl.AddColumns(col)
			var slow int
			for id, rt := range rts {
				row, _ := tbl.Row(id)
				row.SetFloat(col, rt)
				if rt > it.cfg.RuntimeCeiling {
					row.Set(nbCol, "")
					slow++
				}
			}
			slog.Info("Attributed runtimes",
				"method", r.Method(), "dataset", d,
				"patients", len(rts), "over_ceiling", slow)
		}
	}
	return nil
}
