package ingest

import (
	"encoding/csv"
	"os"

	"github.com/deckgen/deckgen/tabular"
	"github.com/pkg/errors"
)

// LoadCSV reads a CSV file into a single flat table. The first
// non-empty row becomes the header.
func LoadCSV(path string) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "ingest: opening %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "ingest: parsing %s", path)
	}

	grid := make([][]tabular.Value, len(records))
	for i, rec := range records {
		row := make([]tabular.Value, len(rec))
		for j, cell := range rec {
			row[j] = parseCell(cell)
		}
		grid[i] = row
	}
	t := tableFromGrid(grid)
	if t == nil {
		return nil, errors.Errorf("ingest: %s has no data", path)
	}
	return t, nil
}
