package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grayfold/jatstab/internal/article"
	"github.com/grayfold/jatstab/internal/batch"
	"github.com/grayfold/jatstab/internal/config"
	"github.com/grayfold/jatstab/internal/storage"
)

var (
	extractJobs   int
	extractDryRun bool
)

func init() {
	extractCmd.Flags().IntVar(&extractJobs, "jobs", 0, "Number of files processed in parallel (0 = all CPUs)")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "Show what would be extracted without writing")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract [path...]",
	Short: "Extract article metadata from XML files",
	Long: `Extract article metadata from archive XML files.

Directories are walked recursively for *.xml files. With no arguments the
configured source_root is scanned. Files are processed independently: a
malformed file is reported and skipped, never aborting the batch.

Examples:
  jatstab extract metadata/
  jatstab extract journal-article-10.2307_123.xml --dry-run
  jatstab extract metadata/ --jobs 8`,
	RunE: runExtract,
}

// ExtractResult represents the result of an extract operation.
type ExtractResult struct {
	Extracted int      `json:"extracted"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// DryRunResult represents the result of a dry-run extract.
type DryRunResult struct {
	WouldExtract int             `json:"would_extract"`
	WouldSkip    int             `json:"would_skip"`
	Failed       int             `json:"failed"`
	Details      []ExtractDetail `json:"details,omitempty"`
	Errors       []string        `json:"errors,omitempty"`
}

// ExtractDetail describes a single extraction action.
type ExtractDetail struct {
	ID     string `json:"id"`
	Action string `json:"action"` // extract, skip
	Title  string `json:"title"`
	Reason string `json:"reason,omitempty"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	paths, err := collectInputs(repoRoot, args)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if len(paths) == 0 {
		exitWithError(ExitError, "no XML files to extract (pass paths or configure source_root)")
	}

	jobs := extractJobs
	if jobs == 0 {
		jobs = config.GetJobs()
	}

	runner := batch.Runner{Jobs: jobs, Log: newLogger()}
	results := runner.Run(paths)
	arts, extractErrs := batch.Split(results)

	if len(extractErrs) > 0 && len(arts) == 0 {
		// Only fatal if nothing was extracted
		if humanOutput {
			fmt.Fprintln(cmd.ErrOrStderr(), "error: failed to extract any records")
			for _, e := range extractErrs {
				fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", e)
			}
		} else {
			outputJSON(ErrorResponse{Error: "failed to extract any records"})
		}
		return exitDataError()
	}

	existing, err := storage.ReadAll(config.ArticlesPath(repoRoot))
	if err != nil {
		exitWithError(ExitDataError, "reading existing articles: %v", err)
	}

	allArts := make([]article.Article, len(existing))
	copy(allArts, existing)

	var extracted, skipped int
	var details []ExtractDetail
	var toAppend []article.Article

	for _, art := range arts {
		if _, found := storage.FindByArticleID(allArts, art.ArticleID); found {
			skipped++
			details = append(details, ExtractDetail{
				ID:     art.ID,
				Action: "skip",
				Title:  truncateString(art.Title, ExtractTitleMaxLen),
				Reason: "duplicate_article_id",
			})
			continue
		}

		// ID collisions from repeated basenames get a numeric suffix
		art.ID = storage.GenerateUniqueID(allArts, art.ID)
		allArts = append(allArts, art)
		toAppend = append(toAppend, art)
		extracted++
		details = append(details, ExtractDetail{
			ID:     art.ID,
			Action: "extract",
			Title:  truncateString(art.Title, ExtractTitleMaxLen),
		})
	}

	errStrs := make([]string, len(extractErrs))
	for i, e := range extractErrs {
		errStrs[i] = e.Error()
	}

	if extractDryRun {
		if humanOutput {
			fmt.Println("Dry run - would extract from XML files...")
			fmt.Printf("  Would extract: %d new records\n", extracted)
			fmt.Printf("  Would skip:    %d duplicates\n", skipped)
			fmt.Printf("  Failed:        %d files\n", len(extractErrs))
			printExtractErrors(errStrs)
		} else {
			outputJSON(DryRunResult{
				WouldExtract: extracted,
				WouldSkip:    skipped,
				Failed:       len(extractErrs),
				Details:      details,
				Errors:       errStrs,
			})
		}
		return nil
	}

	if err := storage.Append(config.ArticlesPath(repoRoot), toAppend); err != nil {
		exitWithError(ExitError, "writing articles: %v", err)
	}

	if humanOutput {
		fmt.Printf("Extracted from %d XML files...\n", len(paths))
		fmt.Printf("  Extracted: %d new records\n", extracted)
		fmt.Printf("  Skipped:   %d duplicates\n", skipped)
		fmt.Printf("  Failed:    %d files\n", len(extractErrs))
		printExtractErrors(errStrs)
	} else {
		outputJSON(ExtractResult{
			Extracted: extracted,
			Skipped:   skipped,
			Failed:    len(extractErrs),
			Errors:    errStrs,
		})
	}

	return nil
}

func printExtractErrors(errStrs []string) {
	if len(errStrs) == 0 {
		return
	}
	fmt.Println("\nErrors:")
	for _, e := range errStrs {
		fmt.Printf("  - %s\n", e)
	}
}

// collectInputs resolves command arguments into a sorted list of XML files.
// Directories are walked recursively; with no arguments the configured
// source_root (repository config, then global config) is used.
func collectInputs(repoRoot string, args []string) ([]string, error) {
	if len(args) == 0 {
		if cfg, err := config.Load(repoRoot); err == nil && cfg.SourceRoot != "" {
			args = []string{config.ExpandPath(cfg.SourceRoot)}
		} else if root := config.GetSourceRoot(); root != "" {
			args = []string{root}
		} else {
			return nil, nil
		}
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}

		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".xml") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
	}

	sort.Strings(paths)
	return paths, nil
}

func exitDataError() error {
	os.Exit(ExitDataError)
	return nil
}
