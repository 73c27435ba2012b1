package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grayfold/jatstab/internal/article"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all articles",
	Long: `List all articles in the repository.

Examples:
  jatstab list
  jatstab list --limit 100`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	arts, err := db.ListAll(listLimit)
	if err != nil {
		exitWithError(ExitError, "listing articles: %v", err)
	}

	// Total for human output
	total, _ := db.Count()

	if humanOutput {
		if len(arts) == 0 {
			fmt.Println("No articles in repository")
		} else {
			if listLimit > 0 && listLimit < total {
				fmt.Printf("%d articles (showing first %d):\n\n", total, len(arts))
			} else {
				fmt.Printf("%d articles in repository:\n\n", len(arts))
			}
			for _, art := range arts {
				title := truncateString(art.Title, ListTitleMaxLen)
				fmt.Printf("  %-28s %s\n", art.ID, title)
				if len(art.Authors) > 0 {
					fmt.Printf("  %-28s %s\n", "", formatAuthorsShort(art.Authors, 3))
				}
			}
		}
	} else {
		if arts == nil {
			arts = []article.Article{}
		}
		outputJSON(arts)
	}

	return nil
}
