package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grayfold/jatstab/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new jatstab repository",
	Long: `Initialize a new jatstab repository in the current directory.

Creates:
  .jatstab/
  ├── articles.jsonl  # Empty file
  ├── config.json     # Default config
  └── cache/          # Empty directory (gitignored)`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	if config.IsRepository(root) {
		exitWithError(ExitError, "directory already contains a jatstab repository")
	}

	if err := os.MkdirAll(config.JatstabPath(root), 0755); err != nil {
		exitWithError(ExitError, "creating .jatstab directory: %v", err)
	}

	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	// Create empty articles.jsonl
	f, err := os.Create(config.ArticlesPath(root))
	if err != nil {
		exitWithError(ExitError, "creating articles.jsonl: %v", err)
	}
	f.Close()

	cfg := &config.Config{}
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "creating config.json: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized jatstab repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
