// Package ithtable aggregates clinical data, purity estimates, results of
// ITH methods, their runtimes and immune signatures into one table.
package ithtable

import (
	"fmt"
	"log/slog"

	"github.com/gnames/ithtable/internal/ent/feature"
	"github.com/gnames/ithtable/pkg/config"
)

// Names of columns created by the pipeline.
const (
	colVitalStatus    = "binary_vital_status"
	colSurvivalDays   = "survival_days"
	colAge            = "age_at_diagnosis"
	colCancerLoc      = "cancer_loc"
	colSampleID       = "sample_id"
	colBarcodeTumour  = "barcodeTumour"
	colNonDiploid     = "perc_non_diploid"
	colMutProtected   = "mutation_count_protected"
	colMutPublic      = "mutation_count_public"
	colMathProtected  = "math_protected"
	colMathCNProtect  = "math_cn_protected"
	colMathPublic     = "math_public"
	colMathCNPublic   = "math_cn_public"
	colLineNb         = "line_nb"
	suffixTimestamp   = "timestamp"
	suffixRuntime     = "runtime"
	prefixAbsoluteCol = "absolute_"
)

// ithtable is an implementation of ITHTable interface.
type ithtable struct {
	cfg config.Config
}

// New creates a new instance of ITHTable.
func New(cfg config.Config) ITHTable {
	res := ithtable{cfg: cfg}
	return &res
}

// Build runs all stages of the pipeline in order.
func (it *ithtable) Build(src Sources) (*feature.Table, error) {
	tbl := feature.New()

	slog.Info("Loading clinical data")
	if err := it.addClinical(tbl, src.Clinical); err != nil {
		return nil, fmt.Errorf("clinical data: %w", err)
	}

	slog.Info("Adding purity and copy-number data")
	if err := it.addPurity(tbl, src.Purity); err != nil {
		return nil, fmt.Errorf("purity data: %w", err)
	}

	slog.Info("Summarizing ITH results", "patients", tbl.Len())
	if err := it.addSummaries(tbl, src.ITH, src.Cache); err != nil {
		return nil, fmt.Errorf("ITH summaries: %w", err)
	}

	slog.Info("Attributing runtimes")
	if err := it.addRuntimes(tbl, src.ITH, src.Runtime); err != nil {
		return nil, fmt.Errorf("runtimes: %w", err)
	}

	slog.Info("Adding immune signatures")
	if err := it.addImmune(tbl, src.Immune); err != nil {
		return nil, fmt.Errorf("immune signatures: %w", err)
	}

	tbl.DedupBy(colBarcodeTumour)
	slog.Info("Feature table is ready", "rows", tbl.Len(), "columns", len(tbl.Columns()))
	return tbl, nil
}

// Save writes the table with all writers.
func (it *ithtable) Save(tbl *feature.Table, ws ...feature.Writer) error {
	for _, w := range ws {
		if err := w.Write(tbl); err != nil {
			return err
		}
	}
	return nil
}
