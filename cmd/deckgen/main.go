// Package main provides the deckgen command line interface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deckgen/deckgen"
	"github.com/deckgen/deckgen/config"
	"github.com/deckgen/deckgen/diag"
	"github.com/deckgen/deckgen/ingest"
	"github.com/spf13/cobra"
)

var (
	dataDir        string
	configDir      string
	slidesPath     string
	formattingPath string
	templatePath   string
	outputPath     string
	entity         string
	strictSources  bool
	verbose        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deckgen",
		Short: "Generate PowerPoint decks from workbook data",
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Build a deck from data files and a slide configuration",
		RunE:  runGenerate,
	}
	generateCmd.Flags().StringVar(&dataDir, "data-dir", "data", "Directory holding workbook and CSV files")
	generateCmd.Flags().StringVar(&configDir, "config-dir", "config", "Configuration directory")
	generateCmd.Flags().StringVar(&slidesPath, "slides", "", "slides.yaml path (default: <config-dir>/slides.yaml)")
	generateCmd.Flags().StringVar(&formattingPath, "formatting", "", "formatting.yaml path (default: <config-dir>/formatting.yaml)")
	generateCmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template .pptx path (default: blank deck)")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "output.pptx", "Output .pptx path")
	generateCmd.Flags().StringVar(&entity, "entity", "", "Entity name substituted on the cover slide")
	generateCmd.Flags().BoolVar(&strictSources, "strict-sources", false, "Fail slide data instead of falling back to the first source")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail to stderr")
	rootCmd.AddCommand(generateCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the sources, sheets and columns found in the data directory",
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringVar(&dataDir, "data-dir", "data", "Directory holding workbook and CSV files")
	inspectCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail to stderr")
	rootCmd.AddCommand(inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() diag.Logger {
	level := diag.LevelInfo
	if verbose {
		level = diag.LevelDebug
	}
	return diag.NewWriterLogger(os.Stderr, level)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	if slidesPath == "" {
		slidesPath = filepath.Join(configDir, "slides.yaml")
	}
	if formattingPath == "" {
		formattingPath = filepath.Join(configDir, "formatting.yaml")
	}

	pages, err := config.LoadSlides(slidesPath)
	if err != nil {
		return err
	}
	formatting, err := config.LoadFormatting(formattingPath)
	if err != nil {
		return err
	}
	store, err := ingest.LoadDir(dataDir, logger)
	if err != nil {
		return err
	}

	opts := []deckgen.Option{deckgen.WithLogger(logger)}
	if strictSources {
		opts = append(opts, deckgen.WithStrictSources())
	}
	gen := deckgen.New(opts...)
	return gen.Generate(deckgen.Job{
		Store:      store,
		Pages:      pages,
		Formatting: formatting,
		Template:   templatePath,
		Output:     outputPath,
		Entity:     entity,
	})
}

func runInspect(cmd *cobra.Command, args []string) error {
	store, err := ingest.LoadDir(dataDir, newLogger())
	if err != nil {
		return err
	}
	for _, source := range store.Sources() {
		ref, _ := store.Lookup(source)
		if ref.Table != nil {
			fmt.Printf("%s (%d rows): %v\n", source, ref.Table.NumRows(), ref.Table.ColumnNames())
			continue
		}
		fmt.Printf("%s:\n", source)
		for _, sheet := range ref.Sheets.Names() {
			t, _ := ref.Sheets.Get(sheet)
			fmt.Printf("  %s (%d rows): %v\n", sheet, t.NumRows(), t.ColumnNames())
		}
	}
	return nil
}
