// Package immuneio reads cell-type gene signatures, gene identifier
// mappings and RNA-seq expression matrices.
package immuneio

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnames/gnsys"
	"github.com/gnames/ithtable/internal/ent/feature"
	"github.com/gnames/ithtable/internal/ent/immune"
	"github.com/gnames/ithtable/internal/io/fileio"
)

// Paths of signature inputs relative to the working directory.
var (
	SignaturesPath = filepath.Join("external_data", "bindea13_signatures_entrez.csv")
	EnsemblPath    = filepath.Join("external_data", "ensembl_entrez.txt")
)

// ExpressionPath returns the expression matrix of a cancer type.
func ExpressionPath(loc string) string {
	return filepath.Join("data", loc, "RNAseq", "tcga_vst_matrix.csv")
}

type immuneio struct {
	dir string
}

// New creates immune.Loader that resolves inputs against dir.
func New(dir string) immune.Loader {
	return &immuneio{dir: dir}
}

// Crosswalk joins signature genes with Ensembl identifiers.
func (im *immuneio) Crosswalk() (immune.Crosswalk, error) {
	sigs, err := im.signatures()
	if err != nil {
		return nil, err
	}
	ens, err := im.ensembl()
	if err != nil {
		return nil, err
	}
	cw := immune.NewCrosswalk(sigs, ens)
	slog.Info("Created signatures crosswalk", "signatures", len(sigs), "genes", len(cw))
	return cw, nil
}

func (im *immuneio) signatures() ([]immune.Signature, error) {
	tbl, err := fileio.ReadTable(filepath.Join(im.dir, SignaturesPath), ',', 0)
	if err != nil {
		slog.Error("Cannot read signatures", "error", err)
		return nil, err
	}
	idx, err := tbl.Cols("CellType", "EntrezGene")
	if err != nil {
		return nil, err
	}
	res := make([]immune.Signature, len(tbl.Rows))
	for i, row := range tbl.Rows {
		res[i] = immune.Signature{
			CellType:   fileio.Field(row, idx[0]),
			EntrezGene: normID(fileio.Field(row, idx[1])),
		}
	}
	return res, nil
}

func (im *immuneio) ensembl() (map[string][]string, error) {
	tbl, err := fileio.ReadTable(filepath.Join(im.dir, EnsemblPath), '\t', 0)
	if err != nil {
		slog.Error("Cannot read gene identifiers", "error", err)
		return nil, err
	}
	idx, err := tbl.Cols("Gene stable ID", "NCBI gene ID")
	if err != nil {
		return nil, err
	}
	res := make(map[string][]string)
	for _, row := range tbl.Rows {
		entrez := normID(fileio.Field(row, idx[1]))
		if entrez == "" {
			continue
		}
		res[entrez] = append(res[entrez], fileio.Field(row, idx[0]))
	}
	return res, nil
}

// normID removes decimal part of numeric identifiers, so `1234.0` and
// `1234` match.
func normID(s string) string {
	v := feature.ParseFloat(s)
	if math.IsNaN(v) || v != math.Trunc(v) {
		return s
	}
	return strconv.FormatInt(int64(v), 10)
}

// Expression reads a matrix with genes in rows and samples in columns.
// The header either omits the gene column or names it.
func (im *immuneio) Expression(loc string) (immune.Expression, error) {
	var res immune.Expression
	path := fileio.Resolve(filepath.Join(im.dir, ExpressionPath(loc)))
	f, err := fileio.Open(path)
	if err != nil {
		slog.Error("Cannot open expression matrix", "cancer", loc, "error", err)
		return res, err
	}
	defer f.Close()

	recs, err := fileio.ReadRecords(f, '\t', 0)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	if len(recs) < 2 {
		return res, fmt.Errorf("%s: empty expression matrix", path)
	}
	header := recs[0]
	if len(header) == len(recs[1]) {
		header = header[1:]
	}
	res.Samples = header
	res.Genes = make([]string, 0, len(recs)-1)
	res.Values = make([][]float64, 0, len(recs)-1)
	for i, row := range recs[1:] {
		if len(row) != len(header)+1 {
			return res, fmt.Errorf("%s:%d: expected %d fields, got %d",
				path, i+2, len(header)+1, len(row))
		}
		vals := make([]float64, len(header))
		for j := range vals {
			vals[j] = feature.ParseFloat(row[j+1])
		}
		res.Genes = append(res.Genes, strings.TrimSpace(row[0]))
		res.Values = append(res.Values, vals)
	}
	slog.Info("Loaded expression matrix", "cancer", loc,
		"genes", len(res.Genes), "samples", len(res.Samples))
	return res, nil
}

// SaveCrosswalk writes crosswalk as a tab-separated file.
func SaveCrosswalk(path string, cw immune.Crosswalk) error {
	err := gnsys.MakeDir(filepath.Dir(path))
	if err != nil {
		slog.Error("Cannot create directory", "path", path, "error", err)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		slog.Error("Cannot create crosswalk file", "path", path, "error", err)
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	err = w.Write([]string{"CellType", "EntrezGene", "Gene stable ID"})
	if err != nil {
		return err
	}
	for _, s := range cw {
		err = w.Write([]string{s.CellType, s.EntrezGene, s.EnsemblGene})
		if err != nil {
			return err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

// SaveCrosswalk writes crosswalk to a path relative to the working
// directory.
func (im *immuneio) SaveCrosswalk(path string, cw immune.Crosswalk) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(im.dir, path)
	}
	return SaveCrosswalk(path, cw)
}
