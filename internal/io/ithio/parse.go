package ithio

import (
	"bufio"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/gnames/ithtable/internal/ent/feature"
	"github.com/gnames/ithtable/internal/ent/ith"
	"github.com/gnames/ithtable/internal/io/fileio"
)

func splitTab(line string) []string {
	return strings.Split(line, "\t")
}

func splitSpace(line string) []string {
	return strings.Fields(line)
}

func parseNum(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", field, s, err)
	}
	return v, nil
}

// readSizeTable reads a table with a header and explicit size and cell
// fraction columns. The name column is optional.
func readSizeTable(path, nameCol, sizeCol, fracCol string) ([]ith.Cluster, error) {
	tbl, err := fileio.ReadTable(path, '\t', 0)
	if err != nil {
		return nil, err
	}
	idx, err := tbl.Cols(sizeCol, fracCol)
	if err != nil {
		return nil, err
	}
	nameIdx, err := tbl.Col(nameCol)
	if err != nil {
		nameIdx = -1
	}

	res := make([]ith.Cluster, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		c := ith.Cluster{Name: strconv.Itoa(i)}
		if nameIdx >= 0 {
			c.Name = fileio.Field(row, nameIdx)
		}
		if c.Size, err = parseNum(fileio.Field(row, idx[0]), sizeCol); err != nil {
			return nil, err
		}
		if c.CellFraction, err = parseNum(fileio.Field(row, idx[1]), fracCol); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}

// readPositional reads a headerless table where columns are cluster name,
// size and cell fraction.
func readPositional(path string, split func(string) []string) ([]ith.Cluster, error) {
	f, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var res []ith.Cluster
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fs := split(line)
		if len(fs) < 3 {
			return nil, fmt.Errorf("%s: expected 3 fields, got %d", path, len(fs))
		}
		c := ith.Cluster{Name: strings.TrimSpace(fs[0])}
		if c.Size, err = parseNum(fs[1], "size"); err != nil {
			return nil, err
		}
		if c.CellFraction, err = parseNum(fs[2], "cell fraction"); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, sc.Err()
}

// readLabelled reads per-mutation cluster labels and VAFs (in percents).
// Clusters are sized by counting their mutations; clusters of a single
// mutation and unlabelled mutations are dropped. Clusters are ordered by
// label.
func readLabelled(path string) ([]ith.Cluster, error) {
	tbl, err := fileio.ReadTable(path, '\t', 0)
	if err != nil {
		return nil, err
	}
	idx, err := tbl.Cols("cluster", "tumor.vaf")
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	sums := make(map[string]float64)
	vafs := make(map[string]int)
	for _, row := range tbl.Rows {
		label := fileio.Field(row, idx[0])
		if !isLabel(label) {
			continue
		}
		counts[label]++
		vaf := feature.ParseFloat(fileio.Field(row, idx[1]))
		if math.IsNaN(vaf) {
			continue
		}
		sums[label] += vaf
		vafs[label]++
	}

	labels := make([]string, 0, len(counts))
	for l, n := range counts {
		if n > 1 {
			labels = append(labels, l)
		}
	}
	sortLabels(labels)

	res := make([]ith.Cluster, 0, len(labels))
	for _, l := range labels {
		frac := math.NaN()
		if vafs[l] > 0 {
			frac = sums[l] / float64(vafs[l]) / 100
		}
		res = append(res, ith.Cluster{Name: l, Size: float64(counts[l]), CellFraction: frac})
	}
	return res, nil
}

// isLabel rejects empty labels and NA markers.
func isLabel(s string) bool {
	switch s {
	case "", "NA", "NaN", "nan":
		return false
	}
	return true
}

// sortLabels sorts numeric labels by value and puts other labels after
// them in lexical order.
func sortLabels(ls []string) {
	sort.Slice(ls, func(i, j int) bool {
		a, errA := strconv.ParseFloat(ls[i], 64)
		b, errB := strconv.ParseFloat(ls[j], 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return ls[i] < ls[j]
	})
}

// readAssignments reads per-mutation subpopulation assignments. The file
// starts with a line of metadata followed by a header. A subpopulation is
// identified by its cellular frequency (SP). Clusters are ordered by size
// descending.
func readAssignments(path string) ([]ith.Cluster, error) {
	tbl, err := fileio.ReadTable(path, '\t', 1)
	if err != nil {
		return nil, err
	}
	idx, err := tbl.Col("SP")
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, row := range tbl.Rows {
		sp := fileio.Field(row, idx)
		if math.IsNaN(feature.ParseFloat(sp)) {
			continue
		}
		if _, ok := counts[sp]; !ok {
			order = append(order, sp)
		}
		counts[sp]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	res := make([]ith.Cluster, len(order))
	for i, sp := range order {
		res[i] = ith.Cluster{
			Name:         sp,
			Size:         float64(counts[sp]),
			CellFraction: feature.ParseFloat(sp),
		}
	}
	return res, nil
}
