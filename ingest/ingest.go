// Package ingest loads workbooks and CSV files into the tabular store.
// Each file becomes one source named after the file stem; workbook
// sheets keep their sheet names. Unreadable files are skipped with a
// warning so one broken export does not sink the whole run.
package ingest

import (
	"strconv"
	"strings"

	"github.com/deckgen/deckgen/tabular"
)

// parseCell types a raw workbook string: numbers become float64,
// everything else stays text.
func parseCell(s string) tabular.Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64); err == nil {
		return f
	}
	return s
}

// tableFromGrid builds a Table from raw sheet rows. The first row with
// any content is the header; rows above it are discarded and fully
// empty rows below it are dropped.
func tableFromGrid(grid [][]tabular.Value) *tabular.Table {
	start := -1
	width := 0
	for i, row := range grid {
		if rowHasData(row) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	for _, row := range grid[start:] {
		if len(row) > width {
			width = len(row)
		}
	}

	names := make([]string, width)
	seen := make(map[string]int)
	header := grid[start]
	for c := 0; c < width; c++ {
		name := ""
		if c < len(header) {
			name = strings.TrimSpace(tabular.String(header[c]))
		}
		if name == "" {
			name = "Column_" + strconv.Itoa(c+1)
		}
		// Duplicate headers get a numeric suffix so column lookup by
		// name stays unambiguous.
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = name + "_" + strconv.Itoa(n+1)
		}
		if _, ok := seen[name]; !ok {
			seen[name] = 1
		}
		names[c] = name
	}

	t := tabular.NewTable(names...)
	for _, row := range grid[start+1:] {
		if !rowHasData(row) {
			continue
		}
		cells := make([]tabular.Value, width)
		for c := 0; c < width; c++ {
			if c < len(row) {
				cells[c] = row[c]
			} else {
				cells[c] = ""
			}
		}
		t.AddRow(cells...)
	}
	return t
}

func rowHasData(row []tabular.Value) bool {
	for _, v := range row {
		if !tabular.IsMissing(v) {
			return true
		}
	}
	return false
}
