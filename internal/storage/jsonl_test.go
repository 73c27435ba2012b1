package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/grayfold/jatstab/internal/article"
)

func testArticles() []article.Article {
	return []article.Article{
		{
			ID:        "10.2307/123",
			JournalID: "amerjsoci",
			ArticleID: "10.2307/123",
			Title:     "On Method",
			Published: article.PubDate{Year: 1904, Month: 10},
			FirstPage: "1",
			LastPage:  "54",
			Pages:     "1-54",
			Authors: []article.Author{
				{GivenNames: "Max", Surname: "Weber", Number: 1, Kind: article.ContribPerson},
				{GivenNames: "Karl", Surname: "Marx", Number: 2, Kind: article.ContribPerson},
			},
		},
		{
			ID:        "10.2307/456",
			JournalID: "amerjsoci",
			ArticleID: "10.2307/456",
			Title:     "The Division of Labor",
			Published: article.PubDate{Year: 1893},
			Authors: []article.Author{
				{GivenNames: "Émile", Surname: "Durkheim", Number: 1, Kind: article.ContribPerson},
			},
		},
	}
}

func TestWriteAllReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.jsonl")
	arts := testArticles()

	if err := WriteAll(path, arts); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !reflect.DeepEqual(got, arts) {
		t.Errorf("roundtrip mismatch:\ngot  %+v\nwant %+v", got, arts)
	}
}

func TestReadAll_MissingFile(t *testing.T) {
	got, err := ReadAll(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err != nil {
		t.Fatalf("ReadAll(missing) error = %v", err)
	}
	if got != nil {
		t.Errorf("ReadAll(missing) = %v, want nil", got)
	}
}

func TestReadAll_SkipsEmptyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.jsonl")
	content := `{"id":"a","journal_id":"j","article_id":"a","article_title":"A","published":{},"authors":null}

{"id":"b","journal_id":"j","article_id":"b","article_title":"B","published":{},"authors":null}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestReadAll_MalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.jsonl")
	if err := os.WriteFile(path, []byte("{not json}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadAll(path); err == nil {
		t.Error("ReadAll(malformed) expected error, got nil")
	}
}

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.jsonl")
	arts := testArticles()

	if err := Append(path, arts[:1]); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := Append(path, arts[1:]); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !reflect.DeepEqual(got, arts) {
		t.Errorf("appended content mismatch:\ngot  %+v\nwant %+v", got, arts)
	}
}

func TestFindByArticleID(t *testing.T) {
	arts := testArticles()

	if idx, found := FindByArticleID(arts, "10.2307/456"); !found || idx != 1 {
		t.Errorf("FindByArticleID = (%d, %v), want (1, true)", idx, found)
	}
	if _, found := FindByArticleID(arts, "10.2307/999"); found {
		t.Error("FindByArticleID(unknown) = true, want false")
	}
	// Empty article-id never matches, even against records that also lack one
	arts = append(arts, article.Article{ID: "no-id"})
	if _, found := FindByArticleID(arts, ""); found {
		t.Error("FindByArticleID(\"\") = true, want false")
	}
}

func TestGenerateUniqueID(t *testing.T) {
	arts := testArticles()

	if got := GenerateUniqueID(arts, "fresh"); got != "fresh" {
		t.Errorf("GenerateUniqueID(fresh) = %q, want fresh", got)
	}
	if got := GenerateUniqueID(arts, "10.2307/123"); got != "10.2307/123-2" {
		t.Errorf("GenerateUniqueID(taken) = %q, want 10.2307/123-2", got)
	}

	arts = append(arts, article.Article{ID: "10.2307/123-2"})
	if got := GenerateUniqueID(arts, "10.2307/123"); got != "10.2307/123-3" {
		t.Errorf("GenerateUniqueID(taken twice) = %q, want 10.2307/123-3", got)
	}
}
