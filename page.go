package skillet

import "context"

// ScrapeMethod identifies which extraction path produced a ScrapedPage.
type ScrapeMethod string

// Scrape methods, fast path first.
const (
	// MethodStructuredData means a complete JSON-LD Recipe block was found
	// and the heuristic HTML path was skipped entirely.
	MethodStructuredData ScrapeMethod = "structured-data"

	// MethodHTMLFallback means content was scraped heuristically and needs
	// LLM-assisted structuring.
	MethodHTMLFallback ScrapeMethod = "html-fallback"
)

// ScrapedPage is the immutable result of scraping a single URL.
type ScrapedPage struct {
	URL    string
	Method ScrapeMethod

	// Structured holds the recipe transformed from JSON-LD when Method is
	// MethodStructuredData.
	Structured *Recipe

	// TextContent holds heuristically extracted page text when Method is
	// MethodHTMLFallback.
	TextContent string

	// ImageCandidates are page images that survived size and keyword
	// filtering, in document order.
	ImageCandidates []string

	// PDFLinks are URLs of linked PDF documents found on the page.
	PDFLinks []string
}

// Scraper loads one URL through browser automation and extracts its
// content, preferring the structured-data fast path.
type Scraper interface {
	// Scrape returns the scraped page or an error when navigation fails
	// after retries. The context bounds the whole operation.
	Scrape(ctx context.Context, url string) (*ScrapedPage, error)
}
