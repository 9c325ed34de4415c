// Package fileio opens input files of the pipeline.
package fileio

import (
	"bufio"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

type gzFile struct {
	*pgzip.Reader
	f *os.File
}

func (g gzFile) Close() error {
	err := g.Reader.Close()
	if e := g.f.Close(); err == nil {
		err = e
	}
	return err
}

// Open opens a file for reading. Files with `.gz` extension are
// decompressed on the fly.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := pgzip.NewReader(bufio.NewReaderSize(f, 4*1024*1024))
	if err != nil {
		f.Close()
		return nil, err
	}
	return gzFile{Reader: gz, f: f}, nil
}

// Resolve returns path or its `.gz` sibling, whichever exists. If none
// exists, path is returned unchanged.
func Resolve(path string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if _, err := os.Stat(path + ".gz"); err == nil {
		return path + ".gz"
	}
	return path
}

// ModTime returns modification time of a file in epoch seconds, NaN if
// the file cannot be accessed.
func ModTime(path string) float64 {
	fi, err := os.Stat(path)
	if err != nil {
		return math.NaN()
	}
	return float64(fi.ModTime().UnixNano()) / 1e9
}
