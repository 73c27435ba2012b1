package export

import (
	"fmt"
	"strings"

	"github.com/grayfold/jatstab/internal/article"
)

// ToBibTeX converts an article to a BibTeX entry.
func ToBibTeX(art article.Article) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@article{%s,\n", citeKey(art)))

	if len(art.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(art.Authors)))
	}

	if art.Title != "" {
		b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(art.Title)))
	}

	if art.JournalTitle != "" {
		b.WriteString(fmt.Sprintf("  journal = {%s},\n", escapeLatex(art.JournalTitle)))
	}

	if art.Published.Year > 0 {
		b.WriteString(fmt.Sprintf("  year = {%d},\n", art.Published.Year))
	}
	if art.Published.Month > 0 {
		b.WriteString(fmt.Sprintf("  month = {%d},\n", art.Published.Month))
	}

	if art.Volume != "" {
		b.WriteString(fmt.Sprintf("  volume = {%s},\n", escapeLatex(art.Volume)))
	}
	if art.Issue != "" {
		b.WriteString(fmt.Sprintf("  number = {%s},\n", escapeLatex(art.Issue)))
	}
	if art.Pages != "" {
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", escapeLatex(art.Pages)))
	}

	// DOIs in archive metadata arrive as article-ids with a DOI shape.
	if strings.HasPrefix(art.ArticleID, "10.") {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", art.ArticleID))
	}

	b.WriteString("}\n")

	return b.String()
}

// ToBibTeXList converts multiple articles to BibTeX format.
func ToBibTeXList(arts []article.Article) string {
	var entries []string
	for _, art := range arts {
		entries = append(entries, ToBibTeX(art))
	}
	return strings.Join(entries, "\n")
}

// citeKey builds a BibTeX citation key. IDs can contain characters BibTeX
// keys cannot, so slashes and whitespace are folded to dashes.
func citeKey(art article.Article) string {
	key := art.ID
	if key == "" {
		key = "unknown"
	}
	replacer := strings.NewReplacer("/", "-", " ", "-", ",", "-", "{", "", "}", "")
	return replacer.Replace(key)
}

// formatAuthors formats authors in BibTeX style: "Last, First and Last, First".
// Group contributors are wrapped in braces so BibTeX keeps them whole.
func formatAuthors(authors []article.Author) string {
	var formatted []string
	for _, a := range authors {
		switch {
		case a.Kind == article.ContribGroup:
			formatted = append(formatted, "{"+escapeLatex(a.Surname)+"}")
		case a.GivenNames != "" && a.Surname != "":
			formatted = append(formatted, fmt.Sprintf("%s, %s", escapeLatex(a.Surname), escapeLatex(a.GivenNames)))
		case a.Surname != "":
			formatted = append(formatted, escapeLatex(a.Surname))
		case a.GivenNames != "":
			formatted = append(formatted, escapeLatex(a.GivenNames))
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
