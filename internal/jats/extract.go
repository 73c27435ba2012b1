// Package jats extracts article metadata from JATS-style archive XML into
// flat article records.
//
// Every field is located by its own declarative path and tolerates absence
// independently: a document missing its title still yields a record with all
// other fields populated. Only a structurally unparsable document fails.
package jats

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grayfold/jatstab/internal/article"
	"github.com/grayfold/jatstab/internal/xmltree"
)

// ExtractFile parses one XML file and returns its article record.
// The record ID falls back to the file basename when the document carries
// no article-id.
func ExtractFile(path string) (article.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return article.Article{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	art, err := ExtractReader(f)
	if err != nil {
		return article.Article{}, fmt.Errorf("%s: %w", path, err)
	}

	art.SourcePath = path
	if art.ID == "" {
		base := filepath.Base(path)
		art.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return art, nil
}

// ExtractReader parses XML from r and returns its article record.
func ExtractReader(r io.Reader) (article.Article, error) {
	doc, err := xmltree.Parse(r)
	if err != nil {
		return article.Article{}, err
	}
	return Extract(doc), nil
}

// Extract assembles one article record from a parsed document.
//
// Extraction is a pure single-pass function: running it twice on the same
// tree yields identical records. Each field is looked up independently, so
// absence of any one subtree never blocks the others.
func Extract(doc *xmltree.Node) article.Article {
	journalMeta := doc.FindFirst("front", "journal-meta")
	meta := doc.FindFirst("front", "article-meta")

	art := article.Article{
		JournalID:    journalMeta.FindFirst("journal-id").Text(),
		JournalTitle: journalTitle(journalMeta),
		ArticleID:    meta.FindFirst("article-id").Text(),
		ArticleType:  doc.Attr("article-type"),
		Title:        meta.FindFirst("title-group", "article-title").Text(),
		Language:     doc.Attr("lang"),
		Volume:       meta.FindFirst("volume").Text(),
		Issue:        meta.FindFirst("issue").Text(),
		Published:    pubDate(meta.FindFirst("pub-date")),
		FirstPage:    meta.FindFirst("fpage").Text(),
		LastPage:     meta.FindFirst("lpage").Text(),
		Authors:      Authors(meta.FindFirst("contrib-group")),
	}
	art.Pages = derivePages(meta.FindFirst("page-range").Text(), art.FirstPage, art.LastPage)
	art.ID = art.ArticleID
	return art
}

// journalTitle reads the journal title, preferring the title-group wrapper
// and falling back to a direct child for older DTD revisions.
func journalTitle(journalMeta *xmltree.Node) string {
	if n := journalMeta.FindFirst("journal-title-group", "journal-title"); n != nil {
		return n.Text()
	}
	return journalMeta.FindFirst("journal-title").Text()
}

// Authors converts a contrib-group node into an ordered author list.
// A nil node yields an empty list. Every contrib child produces one row so
// author numbering stays dense and faithful to document order, even when a
// contributor's shape is unrecognized.
func Authors(contribGroup *xmltree.Node) []article.Author {
	contribs := contribGroup.ChildrenNamed("contrib")
	authors := make([]article.Author, 0, len(contribs))

	for i, contrib := range contribs {
		a := article.Author{Number: i + 1}

		switch {
		case contrib.Child("name") != nil:
			name := contrib.Child("name")
			a.Kind = article.ContribPerson
			a.GivenNames = name.FindFirst("given-names").Text()
			a.Surname = name.FindFirst("surname").Text()
		case contrib.Child("string-name") != nil:
			name := contrib.Child("string-name")
			a.Kind = article.ContribPerson
			a.GivenNames = name.FindFirst("given-names").Text()
			a.Surname = name.FindFirst("surname").Text()
			// Some archives emit the whole name as bare text.
			if a.GivenNames == "" && a.Surname == "" {
				a.Surname = name.Text()
			}
		case contrib.Child("collab") != nil:
			a.Kind = article.ContribGroup
			a.Surname = contrib.FindFirst("collab").Text()
		default:
			a.Kind = article.ContribUnknown
			// Degrade to whatever is recoverable rather than failing the record.
			a.GivenNames = contrib.FindFirst("given-names").Text()
			a.Surname = contrib.FindFirst("surname").Text()
		}

		authors = append(authors, a)
	}
	return authors
}

// pubDate reads a pub-date node into date components. Unparsable or missing
// components stay zero.
func pubDate(node *xmltree.Node) article.PubDate {
	return article.PubDate{
		Year:  atoiLenient(node.FindFirst("year").Text()),
		Month: atoiLenient(node.FindFirst("month").Text()),
		Day:   atoiLenient(node.FindFirst("day").Text()),
	}
}

func atoiLenient(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
