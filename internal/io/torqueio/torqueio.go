// Package torqueio reads Torque epilogue logs and the table that assigns
// patients to job array indices.
package torqueio

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gnames/ithtable/internal/ent/runtime"
	"github.com/gnames/ithtable/internal/io/fileio"
)

// ErrLayout is returned for epilogue lines with unknown number of fields.
var ErrLayout = errors.New("unknown epilogue record layout")

// logMarker is a part of names of epilogue log files.
const logMarker = ".E"

// field positions of an epilogue record
const (
	jobIDF   = 1
	jobNameF = 3
	startF   = 8
)

type torqueio struct {
	logDir    string
	batchPath string
}

// New creates a runtime.Source that reads epilogue logs from logDir and
// patient to array index assignments from batchPath.
func New(logDir, batchPath string) runtime.Source {
	return &torqueio{logDir: logDir, batchPath: batchPath}
}

// Records parses every epilogue log in the log directory. Files are read
// in lexical order.
func (t *torqueio) Records() ([]runtime.JobRecord, error) {
	entries, err := os.ReadDir(t.logDir)
	if err != nil {
		slog.Error("Cannot read log directory", "dir", t.logDir, "error", err)
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.Contains(e.Name(), logMarker) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var res []runtime.JobRecord
	for _, n := range names {
		recs, err := readLog(filepath.Join(t.logDir, n))
		if err != nil {
			return nil, err
		}
		res = append(res, recs...)
	}
	slog.Info("Loaded scheduler records", "files", len(names), "records", len(res))
	return res, nil
}

func readLog(path string) ([]runtime.JobRecord, error) {
	f, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var res []runtime.JobRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	var line int
	for sc.Scan() {
		line++
		txt := strings.TrimRight(sc.Text(), "\r\n")
		if txt == "" {
			continue
		}
		rec, ok, err := ParseRecord(txt)
		if err != nil {
			slog.Error("Cannot parse epilogue record", "path", path, "line", line, "error", err)
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		if ok {
			res = append(res, rec)
		}
	}
	return res, sc.Err()
}

// ParseRecord converts a space-separated epilogue line to a JobRecord.
// The boolean is false for jobs that do not belong to an array.
func ParseRecord(line string) (runtime.JobRecord, bool, error) {
	var res runtime.JobRecord
	fs := strings.Split(line, " ")

	var endF, exitF int
	switch len(fs) - 1 {
	case 24:
		endF, exitF = 18, 19
	case 23:
		endF, exitF = 17, 18
	default:
		return res, false, fmt.Errorf("%w: %d fields", ErrLayout, len(fs))
	}

	var err error
	if res.Start, err = intField(fs[startF], "start="); err != nil {
		return res, false, err
	}
	if res.End, err = intField(fs[endF], "end="); err != nil {
		return res, false, err
	}
	exit, err := intField(fs[exitF], "Exit_status=")
	if err != nil {
		return res, false, err
	}
	res.ExitStatus = int(exit)
	res.JobName = strings.TrimPrefix(fs[jobNameF], "jobname=")

	parts := strings.Split(fs[jobIDF], ";")
	if len(parts) < 3 {
		return res, false, fmt.Errorf("%w: bad job id field %q", ErrLayout, fs[jobIDF])
	}
	res.JobID, _, _ = strings.Cut(parts[2], ".")

	jobNb, rest, isArray := strings.Cut(res.JobID, "[")
	if !isArray {
		return res, false, nil
	}
	res.JobNb = jobNb
	batch, err := strconv.Atoi(strings.TrimSuffix(rest, "]"))
	if err != nil {
		return res, false, fmt.Errorf("bad array index in %q: %w", res.JobID, err)
	}
	res.BatchNb = batch
	return res, true, nil
}

func intField(s, prefix string) (int64, error) {
	if !strings.HasPrefix(s, prefix) {
		return 0, fmt.Errorf("%w: expected %q, got %q", ErrLayout, prefix, s)
	}
	return strconv.ParseInt(strings.TrimPrefix(s, prefix), 10, 64)
}

// Batches reads a headerless CSV of `index,patient` lines. A line with a
// single field gets its line number as index.
func (t *torqueio) Batches() (map[string]int, error) {
	f, err := fileio.Open(t.batchPath)
	if err != nil {
		slog.Error("Cannot open patient list", "path", t.batchPath, "error", err)
		return nil, err
	}
	defer f.Close()

	recs, err := fileio.ReadRecords(f, ',', 0)
	if err != nil {
		return nil, err
	}
	res := make(map[string]int, len(recs))
	for i, rec := range recs {
		switch len(rec) {
		case 1:
			res[strings.TrimSpace(rec[0])] = i + 1
		case 2:
			idx, err := strconv.Atoi(strings.TrimSpace(rec[0]))
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", t.batchPath, i+1, err)
			}
			res[strings.TrimSpace(rec[1])] = idx
		default:
			return nil, fmt.Errorf("%s:%d: expected 1 or 2 fields", t.batchPath, i+1)
		}
	}
	return res, nil
}
