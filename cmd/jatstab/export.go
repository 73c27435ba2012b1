package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grayfold/jatstab/internal/config"
	"github.com/grayfold/jatstab/internal/export"
)

var (
	exportFormat string
	exportDir    string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, bibtex)")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Output directory for CSV export (default: csv_dir from config, else .)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export articles to tabular formats",
	Long: `Export articles as normalized tables.

CSV export writes the one-to-many pair articles.csv and authors.csv; author
rows reference their article by id and carry author_number. BibTeX export
writes entries to stdout.

Examples:
  jatstab export --format csv --dir out/
  jatstab export --format bibtex > refs.bib`,
	RunE: runExport,
}

// ExportResult is the response for CSV export.
type ExportResult struct {
	Status   string `json:"status"`
	Articles int    `json:"articles"`
	Authors  int    `json:"authors"`
	Dir      string `json:"dir"`
}

func runExport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	arts, err := db.ListAll(0)
	if err != nil {
		exitWithError(ExitError, "listing articles: %v", err)
	}

	switch exportFormat {
	case "csv":
		dir := exportDir
		if dir == "" {
			if cfg, err := config.Load(repoRoot); err == nil && cfg.CSVDir != "" {
				dir = config.ExpandPath(cfg.CSVDir)
			} else {
				dir = "."
			}
		}

		if err := export.WriteCSVDir(dir, arts); err != nil {
			exitWithError(ExitError, "writing CSV: %v", err)
		}

		authorRows := 0
		for _, art := range arts {
			authorRows += len(art.Authors)
		}

		if humanOutput {
			fmt.Printf("Wrote %s (%d rows) and %s (%d rows)\n",
				filepath.Join(dir, export.ArticlesCSVFile), len(arts),
				filepath.Join(dir, export.AuthorsCSVFile), authorRows)
		} else {
			outputJSON(ExportResult{
				Status:   "exported",
				Articles: len(arts),
				Authors:  authorRows,
				Dir:      dir,
			})
		}

	case "bibtex":
		// BibTeX is always text output, never JSON
		fmt.Print(export.ToBibTeXList(arts))

	default:
		exitWithError(ExitError, "unknown format: %s (valid: csv, bibtex)", exportFormat)
	}

	return nil
}
