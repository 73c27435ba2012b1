package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/grayfold/jatstab/internal/article"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectArticleFields contains the standard field list for SELECT queries.
const selectArticleFields = `id, journal_id, journal_title, article_id, article_type,
	title, language, volume, issue,
	pub_year, pub_month, pub_day,
	first_page, last_page, pages, source_path`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
// Articles and authors form a normalized one-to-many pair: authors are
// keyed by (article_pk, author_number).
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			journal_id TEXT NOT NULL,
			journal_title TEXT,
			article_id TEXT,
			article_type TEXT,
			title TEXT,
			language TEXT,
			volume TEXT,
			issue TEXT,
			pub_year INTEGER,
			pub_month INTEGER,
			pub_day INTEGER,
			first_page TEXT,
			last_page TEXT,
			pages TEXT,
			source_path TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_articles_article_id
			ON articles(article_id) WHERE article_id IS NOT NULL AND article_id != '';
		CREATE INDEX IF NOT EXISTS idx_articles_journal_id ON articles(journal_id);

		CREATE TABLE IF NOT EXISTS authors (
			article_pk TEXT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
			author_number INTEGER NOT NULL,
			given_names TEXT,
			surname TEXT,
			kind TEXT NOT NULL,
			PRIMARY KEY (article_pk, author_number)
		);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromJSONL clears the database and rebuilds it from a JSONL file.
func (d *DB) RebuildFromJSONL(jsonlPath string) (int, error) {
	arts, err := ReadAll(jsonlPath)
	if err != nil {
		return 0, fmt.Errorf("reading JSONL: %w", err)
	}

	if _, err := d.db.Exec("DELETE FROM authors"); err != nil {
		return 0, fmt.Errorf("clearing authors table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM articles"); err != nil {
		return 0, fmt.Errorf("clearing articles table: %w", err)
	}

	artStmt, err := d.db.Prepare(`
		INSERT INTO articles (
			id, journal_id, journal_title, article_id, article_type,
			title, language, volume, issue,
			pub_year, pub_month, pub_day,
			first_page, last_page, pages, source_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing articles insert: %w", err)
	}
	defer artStmt.Close()

	authStmt, err := d.db.Prepare(`
		INSERT INTO authors (article_pk, author_number, given_names, surname, kind)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing authors insert: %w", err)
	}
	defer authStmt.Close()

	for _, art := range arts {
		_, err = artStmt.Exec(
			art.ID, art.JournalID, art.JournalTitle, art.ArticleID, art.ArticleType,
			art.Title, art.Language, art.Volume, art.Issue,
			art.Published.Year, art.Published.Month, art.Published.Day,
			art.FirstPage, art.LastPage, art.Pages, art.SourcePath,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting article %s: %w", art.ID, err)
		}

		for _, a := range art.Authors {
			kind := a.Kind
			if kind == "" {
				kind = article.ContribUnknown
			}
			if _, err := authStmt.Exec(art.ID, a.Number, a.GivenNames, a.Surname, string(kind)); err != nil {
				return 0, fmt.Errorf("inserting author %d of %s: %w", a.Number, art.ID, err)
			}
		}
	}

	return len(arts), nil
}

// GetByID retrieves an article and its authors by ID.
// Returns (nil, nil) when the article doesn't exist.
func (d *DB) GetByID(id string) (*article.Article, error) {
	row := d.db.QueryRow(`SELECT `+selectArticleFields+` FROM articles WHERE id = ?`, id)
	art, err := scanArticle(row)
	if err != nil || art == nil {
		return art, err
	}

	authors, err := d.authorsFor(id)
	if err != nil {
		return nil, err
	}
	art.Authors = authors
	return art, nil
}

// ListAll returns all articles with their authors, ordered by ID.
// A limit of 0 returns everything.
func (d *DB) ListAll(limit int) ([]article.Article, error) {
	query := `SELECT ` + selectArticleFields + ` FROM articles ORDER BY id`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = d.db.Query(query+` LIMIT ?`, limit)
	} else {
		rows, err = d.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	arts, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}

	for i := range arts {
		authors, err := d.authorsFor(arts[i].ID)
		if err != nil {
			return nil, err
		}
		arts[i].Authors = authors
	}
	return arts, nil
}

// Count returns the number of articles in the database.
func (d *DB) Count() (int, error) {
	var count int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return count, nil
}

// CountAuthors returns the number of author rows in the database.
func (d *DB) CountAuthors() (int, error) {
	var count int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM authors`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting authors: %w", err)
	}
	return count, nil
}

// authorsFor returns the authors of one article in author_number order.
func (d *DB) authorsFor(articleID string) ([]article.Author, error) {
	rows, err := d.db.Query(`
		SELECT author_number, given_names, surname, kind
		FROM authors WHERE article_pk = ?
		ORDER BY author_number`, articleID)
	if err != nil {
		return nil, fmt.Errorf("querying authors for %s: %w", articleID, err)
	}
	defer rows.Close()

	var authors []article.Author
	for rows.Next() {
		var a article.Author
		var kind string
		if err := rows.Scan(&a.Number, &a.GivenNames, &a.Surname, &kind); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		a.Kind = article.ContribKind(kind)
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// scanner abstracts over *sql.Row and *sql.Rows for scanning.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row *sql.Row) (*article.Article, error) {
	art, err := scanArticleFields(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning article: %w", err)
	}
	return art, nil
}

func scanArticles(rows *sql.Rows) ([]article.Article, error) {
	var arts []article.Article
	for rows.Next() {
		art, err := scanArticleFields(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		arts = append(arts, *art)
	}
	return arts, rows.Err()
}

func scanArticleFields(s scanner) (*article.Article, error) {
	var art article.Article
	err := s.Scan(
		&art.ID, &art.JournalID, &art.JournalTitle, &art.ArticleID, &art.ArticleType,
		&art.Title, &art.Language, &art.Volume, &art.Issue,
		&art.Published.Year, &art.Published.Month, &art.Published.Day,
		&art.FirstPage, &art.LastPage, &art.Pages, &art.SourcePath,
	)
	if err != nil {
		return nil, err
	}
	return &art, nil
}
