package ingest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/deckgen/deckgen/diag"
	"github.com/deckgen/deckgen/tabular"
	"github.com/pkg/errors"
)

// LoadDir ingests every recognized data file directly under dir into a
// store. Source names are the file stems. A file that fails to parse is
// logged and skipped; only an unreadable directory is an error.
func LoadDir(dir string, logger diag.Logger) (*tabular.DataStore, error) {
	if logger == nil {
		logger = diag.Nop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "ingest: reading %s", dir)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	store := tabular.NewDataStore()
	for _, name := range names {
		// Office lock files start with ~$.
		if strings.HasPrefix(name, "~$") {
			continue
		}
		path := filepath.Join(dir, name)
		source := strings.TrimSuffix(name, filepath.Ext(name))
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xlsx", ".xlsm":
			sheets, err := LoadXLSX(path)
			if err != nil {
				logger.Warn("skipping unreadable workbook", "file", name, "error", err)
				continue
			}
			store.SetSheets(source, sheets)
			logger.Info("loaded workbook", "source", source, "sheets", sheets.Len())
		case ".xls":
			sheets, err := LoadXLS(path)
			if err != nil {
				logger.Warn("skipping unreadable workbook", "file", name, "error", err)
				continue
			}
			store.SetSheets(source, sheets)
			logger.Info("loaded workbook", "source", source, "sheets", sheets.Len())
		case ".csv":
			t, err := LoadCSV(path)
			if err != nil {
				logger.Warn("skipping unreadable csv", "file", name, "error", err)
				continue
			}
			store.SetTable(source, t)
			logger.Info("loaded csv", "source", source, "rows", t.NumRows())
		}
	}
	if store.Len() == 0 {
		logger.Warn("no data files found", "dir", dir)
	}
	return store, nil
}
