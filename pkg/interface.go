package ithtable

import (
	"github.com/gnames/ithtable/internal/ent/cache"
	"github.com/gnames/ithtable/internal/ent/clinical"
	"github.com/gnames/ithtable/internal/ent/feature"
	"github.com/gnames/ithtable/internal/ent/immune"
	"github.com/gnames/ithtable/internal/ent/ith"
	"github.com/gnames/ithtable/internal/ent/purity"
	"github.com/gnames/ithtable/internal/ent/runtime"
)

// ITHTable is an interface for building the ITH feature table.
type ITHTable interface {
	// Build reads all sources and creates the feature table, one row per
	// patient.
	Build(Sources) (*feature.Table, error)

	// Save writes the table with every given writer.
	Save(*feature.Table, ...feature.Writer) error
}

// Sources contains readers of all pipeline inputs.
type Sources struct {
	// Clinical provides patients.
	Clinical clinical.Loader

	// Purity provides purity, copy-number and mutation data.
	Purity purity.Loader

	// ITH provides results of ITH methods.
	ITH []ith.Reader

	// Runtime provides scheduler records.
	Runtime runtime.Source

	// Immune provides signatures and expression data.
	Immune immune.Loader

	// Cache keeps summaries between runs, it is optional.
	Cache cache.Cache
}
