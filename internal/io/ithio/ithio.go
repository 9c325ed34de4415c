// Package ithio reads results of ITH methods. Every method keeps its
// results in its own layout and format; readers convert them into
// ith.Cluster slices.
package ithio

import (
	"fmt"
	"path/filepath"

	"github.com/gnames/ithtable/internal/ent/ith"
	"github.com/gnames/ithtable/internal/io/fileio"
)

// Names of supported ITH methods.
const (
	PyClone  = "pyclone"
	PhyloWGS = "PhyloWGS"
	SciClone = "sciclone"
	Baseline = "baseline"
	Expands  = "expands"
	CSR      = "CSR"
)

// Methods lists all supported methods in their default order.
var Methods = []string{PyClone, PhyloWGS, SciClone, Baseline, Expands, CSR}

type base struct {
	dir string
}

// resultPath returns `<dir>/results/<patient>/<method>/<dataset>/<rest>`,
// or its `.gz` sibling if only the compressed file exists.
func (b base) resultPath(patient, method, dataset string, rest ...string) string {
	parts := append([]string{b.dir, "results", patient, method, dataset}, rest...)
	return fileio.Resolve(filepath.Join(parts...))
}

// New creates a reader for an ITH method. Result files are looked up
// under dir.
func New(dir, method string) (ith.Reader, error) {
	b := base{dir: dir}
	switch method {
	case PyClone:
		return pyclone{b}, nil
	case PhyloWGS:
		return phylowgs{b}, nil
	case SciClone:
		return sciclone{b}, nil
	case Baseline:
		return baseline{b}, nil
	case Expands:
		return expands{b}, nil
	case CSR:
		return csr{b}, nil
	}
	return nil, fmt.Errorf("unknown ITH method %q", method)
}

// NewAll creates readers for several methods.
func NewAll(dir string, methods []string) ([]ith.Reader, error) {
	res := make([]ith.Reader, len(methods))
	for i, m := range methods {
		r, err := New(dir, m)
		if err != nil {
			return nil, err
		}
		res[i] = r
	}
	return res, nil
}
