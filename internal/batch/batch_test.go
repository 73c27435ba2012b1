package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_ResultsInInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	ids := []string{"100", "101", "102", "103", "104"}
	for _, id := range ids {
		doc := "<article><front><article-meta><article-id>" + id + "</article-id></article-meta></front></article>"
		paths = append(paths, writeFile(t, dir, "a"+id+".xml", doc))
	}

	results := Runner{Jobs: 3}.Run(paths)
	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	for i, res := range results {
		if res.Err != nil {
			t.Fatalf("results[%d] error = %v", i, res.Err)
		}
		if res.Article.ArticleID != ids[i] {
			t.Errorf("results[%d].ArticleID = %q, want %q (input order)", i, res.Article.ArticleID, ids[i])
		}
	}
}

func TestRun_FailureIsolation(t *testing.T) {
	dir := t.TempDir()
	good1 := writeFile(t, dir, "good1.xml", "<article><front><article-meta><article-id>1</article-id></article-meta></front></article>")
	bad := writeFile(t, dir, "bad.xml", "<article><front>")
	good2 := writeFile(t, dir, "good2.xml", "<article><front><article-meta><article-id>2</article-id></article-meta></front></article>")
	missing := filepath.Join(dir, "does-not-exist.xml")

	results := Runner{}.Run([]string{good1, bad, good2, missing})

	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("good files failed: %v, %v", results[0].Err, results[2].Err)
	}
	if results[1].Err == nil {
		t.Error("malformed file did not produce an error")
	}
	if results[3].Err == nil {
		t.Error("missing file did not produce an error")
	}
	if results[0].Article.ArticleID != "1" || results[2].Article.ArticleID != "2" {
		t.Errorf("good results corrupted by neighboring failures: %+v, %+v",
			results[0].Article, results[2].Article)
	}
}

func TestRun_Empty(t *testing.T) {
	results := Runner{}.Run(nil)
	if len(results) != 0 {
		t.Errorf("Run(nil) = %v, want empty", results)
	}
}

func TestSplit(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.xml", "<article><front><article-meta><article-id>1</article-id></article-meta></front></article>")
	bad := writeFile(t, dir, "bad.xml", "not xml")

	arts, errs := Split(Runner{Jobs: 1}.Run([]string{good, bad}))

	if len(arts) != 1 {
		t.Errorf("got %d articles, want 1", len(arts))
	}
	if len(errs) != 1 {
		t.Errorf("got %d errors, want 1", len(errs))
	}
}
