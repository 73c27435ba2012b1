// Package article defines the core domain types for extracted article metadata.
package article

// Article represents the metadata of one journal article, one per source document.
type Article struct {
	// Identity
	ID string `json:"id"` // article_id when present, else source file basename

	// Journal
	JournalID    string `json:"journal_id"`              // jcode or publisher journal id
	JournalTitle string `json:"journal_title,omitempty"` // display title of the journal

	// Article metadata
	ArticleID   string `json:"article_id"` // DOI or archive-internal id
	ArticleType string `json:"article_type,omitempty"`
	Title       string `json:"article_title"`
	Language    string `json:"language,omitempty"`
	Volume      string `json:"volume,omitempty"`
	Issue       string `json:"issue,omitempty"`

	// Publication date, components zero when unknown
	Published PubDate `json:"published"`

	// Pages
	FirstPage string `json:"first_page,omitempty"`
	LastPage  string `json:"last_page,omitempty"`
	Pages     string `json:"article_pages,omitempty"` // derived summary, absent when no page data

	// Contributors, in document order
	Authors []Author `json:"authors"`

	// Provenance
	SourcePath string `json:"source_path,omitempty"` // file the record was extracted from
}

// PubDate represents a publication date with optional month and day.
type PubDate struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"` // 1-12, 0 if unknown
	Day   int `json:"day,omitempty"`   // 1-31, 0 if unknown
}
