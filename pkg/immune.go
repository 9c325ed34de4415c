package ithtable

import (
	"log/slog"

	"github.com/gnames/ithtable/internal/ent/feature"
	"github.com/gnames/ithtable/internal/ent/immune"
)

// addImmune adds immune cell-type scores of every patient's sample.
func (it *ithtable) addImmune(tbl *feature.Table, l immune.Loader) error {
	cw, err := l.Crosswalk()
	if err != nil {
		return err
	}
	if it.cfg.SaveCrosswalk && it.cfg.CrosswalkPath != "" {
		if err = l.SaveCrosswalk(it.cfg.Path(it.cfg.CrosswalkPath), cw); err != nil {
			return err
		}
	}

	scores := make(map[string]map[string]float64)
	for _, loc := range it.cfg.CancerLocs {
		ex, err := l.Expression(loc)
		if err != nil {
			return err
		}
		slog.Info("Scored expression",
			"cancer_loc", loc, "samples", len(ex.Samples),
			"matched_genes", immune.Matched(cw, ex))
		for _, ss := range immune.Scores(cw, ex) {
			if _, ok := scores[ss.SampleID]; ok {
				continue
			}
			scores[ss.SampleID] = ss.Scores
		}
	}

	cts := cw.CellTypes()
	tbl.AddColumns(cts...)
	for _, row := range tbl.Rows() {
		sc, ok := scores[row.Get(colSampleID)]
		if !ok {
			continue
		}
		for _, ct := range cts {
			row.SetFloat(ct, sc[ct])
		}
	}
	return nil
}
