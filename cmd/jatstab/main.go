// Package main provides the jatstab CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/grayfold/jatstab/internal/config"
	"github.com/grayfold/jatstab/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables structured logging on stderr
var verbose bool

func main() {
	// Pick up JATSTAB_ROOT and friends from a local .env if present.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jatstab",
	Short: "Extract tabular article metadata from archive XML",
	Long: `jatstab converts JATS-style XML article metadata into normalized tables.

Each XML document yields one article record plus zero or more author records.
Records live in a git-versionable JSONL file with an ephemeral SQLite database
for fast queries, and export as a one-to-many pair of CSV tables. All commands
output JSON by default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log per-file progress to stderr")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to search for a repository from.
func getStartingDirectory() (string, int) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}

	// JATSTAB_ROOT overrides the working directory
	if root := os.Getenv("JATSTAB_ROOT"); root != "" {
		cwd = root
	}

	return cwd, 0
}

// mustFindRepository locates the repository root, exits on error.
// Falls back to the repo_path from the global config when the working
// directory is not inside a repository.
func mustFindRepository() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(start)
	if err != nil {
		if fallback := config.GetRepoPath(); fallback != "" && config.IsRepository(fallback) {
			return fallback
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	return repoRoot
}

// mustOpenDatabase opens the SQLite database, exits on error.
func mustOpenDatabase(repoRoot string) *storage.DB {
	dbPath := config.DBPath(repoRoot)
	db, err := storage.OpenDB(dbPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}
