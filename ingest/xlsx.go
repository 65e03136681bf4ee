package ingest

import (
	"github.com/deckgen/deckgen/tabular"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads every sheet of an .xlsx or .xlsm workbook. Sheets with
// no content are omitted from the result.
func LoadXLSX(path string) (*tabular.SheetMap, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "ingest: opening %s", path)
	}
	defer f.Close()

	sheets := tabular.NewSheetMap()
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errors.Wrapf(err, "ingest: reading sheet %s of %s", name, path)
		}
		grid := make([][]tabular.Value, len(rows))
		for i, row := range rows {
			cells := make([]tabular.Value, len(row))
			for j, cell := range row {
				cells[j] = parseCell(cell)
			}
			grid[i] = cells
		}
		if t := tableFromGrid(grid); t != nil {
			sheets.Set(name, t)
		}
	}
	return sheets, nil
}
