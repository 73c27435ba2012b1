package jats

// derivePages builds the page-range summary for a record.
// An explicit page-range element wins; otherwise the summary is built from
// the first and last page, and is absent when no page data exists.
func derivePages(pageRange, fpage, lpage string) string {
	if pageRange != "" {
		return pageRange
	}
	if fpage == "" {
		return ""
	}
	if lpage == "" || lpage == fpage {
		return fpage
	}
	return fpage + "-" + lpage
}
