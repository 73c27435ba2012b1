// Package export provides functions to export articles to tabular formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/grayfold/jatstab/internal/article"
)

// Default file names written by WriteCSVDir.
const (
	ArticlesCSVFile = "articles.csv"
	AuthorsCSVFile  = "authors.csv"
)

// articleHeader is the column order of articles.csv.
var articleHeader = []string{
	"id", "journal_id", "journal_title", "article_id", "article_type",
	"article_title", "language", "volume", "issue",
	"pub_year", "pub_month", "pub_day",
	"first_page", "last_page", "article_pages", "n_authors",
}

// authorHeader is the column order of authors.csv. article_id plus
// author_number form the foreign key back to articles.csv.
var authorHeader = []string{
	"article_id", "author_number", "given_names", "surname", "kind",
}

// WriteCSVDir writes articles.csv and authors.csv into dir, the classic
// one-to-many normalized pair: one row per article, one row per author.
func WriteCSVDir(dir string, arts []article.Article) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := writeCSVFile(filepath.Join(dir, ArticlesCSVFile), func(w *csv.Writer) error {
		return WriteArticlesCSV(w, arts)
	}); err != nil {
		return err
	}

	return writeCSVFile(filepath.Join(dir, AuthorsCSVFile), func(w *csv.Writer) error {
		return WriteAuthorsCSV(w, arts)
	})
}

func writeCSVFile(path string, write func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// WriteArticlesCSV writes one row per article.
func WriteArticlesCSV(w *csv.Writer, arts []article.Article) error {
	if err := w.Write(articleHeader); err != nil {
		return err
	}
	for _, art := range arts {
		row := []string{
			art.ID, art.JournalID, art.JournalTitle, art.ArticleID, art.ArticleType,
			art.Title, art.Language, art.Volume, art.Issue,
			intField(art.Published.Year), intField(art.Published.Month), intField(art.Published.Day),
			art.FirstPage, art.LastPage, art.Pages,
			strconv.Itoa(len(art.Authors)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteAuthorsCSV writes one row per author, foreign-keyed to its article.
func WriteAuthorsCSV(w *csv.Writer, arts []article.Article) error {
	if err := w.Write(authorHeader); err != nil {
		return err
	}
	for _, art := range arts {
		for _, a := range art.Authors {
			row := []string{
				art.ID,
				strconv.Itoa(a.Number),
				a.GivenNames,
				a.Surname,
				string(a.Kind),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteCSVPair writes both tables to the given writers, for callers that
// manage their own destinations.
func WriteCSVPair(articles, authors io.Writer, arts []article.Article) error {
	aw := csv.NewWriter(articles)
	if err := WriteArticlesCSV(aw, arts); err != nil {
		return err
	}
	aw.Flush()
	if err := aw.Error(); err != nil {
		return err
	}

	uw := csv.NewWriter(authors)
	if err := WriteAuthorsCSV(uw, arts); err != nil {
		return err
	}
	uw.Flush()
	return uw.Error()
}

// intField renders a date component, empty when unknown.
func intField(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
