package skillet

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML, boilerplate removed.
	ContentHTML string
}

// ContentExtractor extracts main content from HTML pages, removing
// boilerplate. The scraper uses it as the full-page fallback when no
// recipe container selector matches.
type ContentExtractor interface {
	Extract(html string) (*ExtractResult, error)
}
