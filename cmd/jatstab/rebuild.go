package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grayfold/jatstab/internal/config"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the query layer from source data",
	Long: `Rebuild the SQLite query database from the JSONL source file.

Use this after pulling changes from git or if the database becomes corrupted.`,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status   string `json:"status"`
	Articles int    `json:"articles"`
	Authors  int    `json:"authors"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	if err := os.MkdirAll(config.CachePath(repoRoot), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	count, err := db.RebuildFromJSONL(config.ArticlesPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "rebuilding database: %v", err)
	}

	authorCount, err := db.CountAuthors()
	if err != nil {
		exitWithError(ExitError, "counting authors: %v", err)
	}

	if humanOutput {
		fmt.Printf("Rebuilt query database with %d articles and %d authors\n", count, authorCount)
	} else {
		outputJSON(RebuildResult{
			Status:   "rebuilt",
			Articles: count,
			Authors:  authorCount,
		})
	}

	return nil
}
