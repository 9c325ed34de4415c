// Package cache describes a persistent store of computed ITH summaries.
// Result files are large and rarely change, so summaries are keyed by
// file identity and reused between runs.
package cache

import (
	"fmt"
	"time"

	"github.com/gnames/gnuuid"
	"github.com/gnames/ithtable/internal/ent/ith"
)

// Cache keeps ITH summaries between runs.
type Cache interface {
	// Open opens the store.
	Open() error

	// Close closes the store.
	Close() error

	// Get returns a summary for a key. The boolean is false if the key is
	// not in the store.
	Get(key string) (ith.Summary, bool, error)

	// Set saves a summary under a key.
	Set(key string, s ith.Summary) error
}

// Key creates a UUID v5 key from the path of a result file, its size and
// its modification time. A changed file gets a new key.
func Key(path string, size int64, mtime time.Time, minSize float64) string {
	s := fmt.Sprintf("%s|%d|%d|%g", path, size, mtime.UnixNano(), minSize)
	return gnuuid.New(s).String()
}
