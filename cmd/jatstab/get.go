package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grayfold/jatstab/internal/article"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single article by ID",
	Long: `Get a single article record by its ID, authors included.

Example:
  jatstab get 10.2307/2095521`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	id := args[0]
	art, err := db.GetByID(id)
	if err != nil {
		exitWithError(ExitError, "getting article: %v", err)
	}
	if art == nil {
		exitWithError(ExitError, "article not found: %s", id)
	}

	if humanOutput {
		printArticleDetail(*art)
	} else {
		outputJSON(art)
	}

	return nil
}

func printArticleDetail(art article.Article) {
	fmt.Println(art.ID)
	fmt.Println(strings.Repeat("═", 70))
	fmt.Println()

	fmt.Printf("Title:    %s\n", wrapText(art.Title, DetailTextWrapWidth, "          "))
	if art.JournalTitle != "" {
		fmt.Printf("Journal:  %s (%s)\n", art.JournalTitle, art.JournalID)
	} else if art.JournalID != "" {
		fmt.Printf("Journal:  %s\n", art.JournalID)
	}
	if art.Published.Year > 0 {
		fmt.Printf("Year:     %d\n", art.Published.Year)
	}
	if art.Volume != "" || art.Issue != "" {
		fmt.Printf("Vol/Iss:  %s / %s\n", art.Volume, art.Issue)
	}
	if art.Pages != "" {
		fmt.Printf("Pages:    %s\n", art.Pages)
	}

	if len(art.Authors) > 0 {
		fmt.Println("\nAuthors:")
		for _, a := range art.Authors {
			kind := ""
			if a.Kind != article.ContribPerson {
				kind = fmt.Sprintf("  [%s]", a.Kind)
			}
			fmt.Printf("  %2d. %s%s\n", a.Number, a.DisplayName(), kind)
		}
	}
}
