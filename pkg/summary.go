package ithtable

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/gnames/ithtable/internal/ent/cache"
	"github.com/gnames/ithtable/internal/ent/feature"
	"github.com/gnames/ithtable/internal/ent/ith"
	"golang.org/x/sync/errgroup"
)

// addSummaries computes summary statistics of every method and dataset
// for every patient. Missing or unreadable results give empty cells.
func (it *ithtable) addSummaries(
	tbl *feature.Table,
	readers []ith.Reader,
	c cache.Cache,
) error {
	ids := tbl.PatientIDs()
	var count atomic.Int64

	for _, r := range readers {
		for _, d := range it.cfg.Datasets {
			cols := make([]string, len(ith.StatNames))
			for i, s := range ith.StatNames {
				cols[i] = feature.ColumnName(r.Method(), d, s)
			}
			tbl.AddColumns(cols...)

			res := make([]ith.Summary, len(ids))
			g := new(errgroup.Group)
			g.SetLimit(max(it.cfg.JobsNum, 1))
			for i, id := range ids {
				i, id := i, id
				g.Go(func() error {
					s, err := it.summary(r, id, d, c)
					if err != nil {
						return err
					}
					res[i] = s
					n := count.Add(1)
					if n%1000 == 0 {
						fmt.Fprintf(os.Stderr, "\r%s", humanize.Comma(n))
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			var found int
			for i, id := range ids {
				row, _ := tbl.Row(id)
				vals := res[i].Values()
				for j := range cols {
					row.SetFloat(cols[j], vals[j])
				}
				if !res[i].IsMissing() {
					found++
				}
			}
			slog.Info("Summarized results",
				"method", r.Method(), "dataset", d, "patients", found)
		}
	}
	fmt.Fprintf(os.Stderr, "\r%s\n", humanize.Comma(count.Load()))
	return nil
}

// summary returns statistics of one result file. Only cache failures are
// reported as errors.
func (it *ithtable) summary(
	r ith.Reader,
	patient, dataset string,
	c cache.Cache,
) (ith.Summary, error) {
	var key string
	if c != nil {
		path := r.SummaryFile(patient, dataset)
		fi, err := os.Stat(path)
		if err != nil {
			return ith.Missing(), nil
		}
		key = cache.Key(path, fi.Size(), fi.ModTime(), it.cfg.MinClusterSize)
		s, ok, err := c.Get(key)
		if err != nil {
			return ith.Missing(), fmt.Errorf("cache get %s: %w", path, err)
		}
		if ok {
			return s, nil
		}
	}

	s := summarize(r, patient, dataset, it.cfg.MinClusterSize)

	if c != nil {
		if err := c.Set(key, s); err != nil {
			return s, fmt.Errorf("cache set: %w", err)
		}
	}
	return s, nil
}

func summarize(r ith.Reader, patient, dataset string, minSize float64) ith.Summary {
	cs, err := r.Clusters(patient, dataset)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("Cannot read result",
				"method", r.Method(), "patient", patient,
				"dataset", dataset, "error", err)
		}
		return ith.Missing()
	}
	s, err := ith.Summarize(cs, minSize)
	if err != nil {
		return ith.Missing()
	}
	return s
}
