package export

import (
	"strings"
	"testing"

	"github.com/grayfold/jatstab/internal/article"
)

func TestToBibTeX(t *testing.T) {
	art := sampleArticles()[0]
	got := ToBibTeX(art)

	wants := []string{
		"@article{10.2307-123,",
		"author = {Weber, Max and Marx, Karl},",
		"title = {On Method},",
		"journal = {American Journal of Sociology},",
		"year = {1904},",
		"volume = {10},",
		"number = {2},",
		"pages = {1-54},",
		"doi = {10.2307/123},",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("ToBibTeX() missing %q:\n%s", want, got)
		}
	}
}

func TestToBibTeX_GroupAuthorBraced(t *testing.T) {
	art := article.Article{
		ID:    "x",
		Title: "Joint Report",
		Authors: []article.Author{
			{Surname: "Committee on Standards", Number: 1, Kind: article.ContribGroup},
		},
	}
	got := ToBibTeX(art)
	if !strings.Contains(got, "author = {{Committee on Standards}},") {
		t.Errorf("group author not braced:\n%s", got)
	}
}

func TestToBibTeX_EscapesLatex(t *testing.T) {
	art := article.Article{ID: "x", Title: "Profit & Loss: 100% of the $tory"}
	got := ToBibTeX(art)
	if !strings.Contains(got, `title = {Profit \& Loss: 100\% of the \$tory},`) {
		t.Errorf("special characters not escaped:\n%s", got)
	}
}

func TestToBibTeX_OmitsAbsentFields(t *testing.T) {
	got := ToBibTeX(article.Article{ID: "bare"})

	for _, field := range []string{"author =", "journal =", "year =", "pages =", "doi ="} {
		if strings.Contains(got, field) {
			t.Errorf("ToBibTeX() of bare record should omit %q:\n%s", field, got)
		}
	}
}

func TestToBibTeXList(t *testing.T) {
	got := ToBibTeXList(sampleArticles())
	if strings.Count(got, "@article{") != 2 {
		t.Errorf("ToBibTeXList() entry count wrong:\n%s", got)
	}
}
