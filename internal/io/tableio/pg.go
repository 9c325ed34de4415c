package tableio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gnames/ithtable/internal/ent/feature"
	"github.com/gnames/ithtable/pkg/config"
	"github.com/gnames/ithtable/pkg/ent/model"
	"github.com/gnames/ithtable/pkg/io/modelio"
	"github.com/jackc/pgx/v5"
)

type pg struct {
	cfg     config.Config
	version string
}

// NewPg creates a feature.Writer that replaces cfg.PgTable in PostgreSQL
// with the feature table. Empty cells become NULL. Every export is
// recorded in the runs table together with the given version.
func NewPg(cfg config.Config, version string) feature.Writer {
	return &pg{cfg: cfg, version: version}
}

func (p *pg) Write(tbl *feature.Table) error {
	ctx := context.Background()
	db, err := pgxConn(p.cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, q := range CreateTableSQL(p.cfg.PgTable, tbl.Columns()) {
		if _, err = db.Exec(ctx, q); err != nil {
			slog.Error("Cannot prepare table", "query", q, "error", err)
			return err
		}
	}

	n, err := db.CopyFrom(
		ctx,
		pgx.Identifier{p.cfg.PgTable},
		tbl.Columns(),
		pgx.CopyFromRows(rows(tbl)),
	)
	if err != nil {
		slog.Error("Cannot copy rows to database", "error", err)
		return err
	}
	slog.Info("Saved feature table to database", "table", p.cfg.PgTable, "rows", n)
	return p.saveRun(tbl)
}

// saveRun registers the export in the runs table.
func (p *pg) saveRun(tbl *feature.Table) error {
	grm, err := gormConn(p.cfg)
	if err != nil {
		return err
	}
	defer grm.Close()

	m := modelio.New(grm)
	if err = m.Migrate(); err != nil {
		slog.Error("Cannot migrate database", "error", err)
		return err
	}
	run := model.Run{
		FeatureTable: p.cfg.PgTable,
		Version:      p.version,
		RowsNum:      tbl.Len(),
		ColumnsNum:   len(tbl.Columns()),
		CancerLocs:   strings.Join(p.cfg.CancerLocs, ","),
	}
	if err = m.SaveRun(run); err != nil {
		slog.Error("Cannot save run record", "error", err)
		return err
	}
	return nil
}

// CreateTableSQL returns statements that recreate a table with a text
// column for every feature column.
func CreateTableSQL(table string, cols []string) []string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = pgx.Identifier{c}.Sanitize() + " TEXT"
	}
	name := pgx.Identifier{table}.Sanitize()
	return []string{
		"DROP TABLE IF EXISTS " + name,
		fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", name, strings.Join(defs, ",\n  ")),
	}
}

func rows(tbl *feature.Table) [][]any {
	recs := tbl.Records()[1:]
	res := make([][]any, len(recs))
	for i, rec := range recs {
		row := make([]any, len(rec))
		for j, v := range rec {
			if v == "" {
				continue
			}
			row[j] = v
		}
		res[i] = row
	}
	return res
}
