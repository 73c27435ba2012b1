// Package storage handles data persistence in JSONL and SQLite formats.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/grayfold/jatstab/internal/article"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all articles from a JSONL file.
func ReadAll(path string) ([]article.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file returns empty slice
		}
		return nil, fmt.Errorf("opening articles file: %w", err)
	}
	defer f.Close()

	var arts []article.Article
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var art article.Article
		if err := json.Unmarshal(line, &art); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		arts = append(arts, art)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading articles file: %w", err)
	}

	return arts, nil
}

// WriteAll writes all articles to a JSONL file, replacing existing content.
func WriteAll(path string, arts []article.Article) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating articles file: %w", err)
	}
	defer f.Close()

	for i, art := range arts {
		data, err := json.Marshal(art)
		if err != nil {
			return fmt.Errorf("encoding article %d: %w", i, err)
		}

		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing article %d: %w", i, err)
		}
		if _, err := f.WriteString("\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	return nil
}

// Append adds articles to the end of a JSONL file.
func Append(path string, arts []article.Article) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening articles file for append: %w", err)
	}
	defer f.Close()

	for _, art := range arts {
		data, err := json.Marshal(art)
		if err != nil {
			return fmt.Errorf("encoding article %s: %w", art.ID, err)
		}

		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("writing article %s: %w", art.ID, err)
		}
		if _, err := f.WriteString("\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	return nil
}

// FindByID searches for an article by ID.
func FindByID(arts []article.Article, id string) (int, bool) {
	for i, art := range arts {
		if art.ID == id {
			return i, true
		}
	}
	return -1, false
}

// FindByArticleID searches for an article by its source article-id.
func FindByArticleID(arts []article.Article, articleID string) (int, bool) {
	if articleID == "" {
		return -1, false
	}
	for i, art := range arts {
		if art.ArticleID == articleID {
			return i, true
		}
	}
	return -1, false
}

// GenerateUniqueID returns an ID that doesn't conflict with existing articles.
// If the base ID exists, appends -2, -3, etc.
func GenerateUniqueID(arts []article.Article, baseID string) string {
	if _, found := FindByID(arts, baseID); !found {
		return baseID
	}

	// Start at 2: baseID is taken, so first duplicate becomes baseID-2
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", baseID, i)
		if _, found := FindByID(arts, candidate); !found {
			return candidate
		}
	}
}
