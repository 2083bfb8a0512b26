package skillet

import "context"

// Fetcher retrieves raw content over plain HTTP, without JavaScript
// rendering. Used for sitemap retrieval and the static-HTML discovery
// fallback when browser automation is unavailable.
type Fetcher interface {
	// Fetch returns the response body for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases resources.
	Close() error
}

// Converter converts HTML to Markdown. The slow scrape path converts the
// recipe container HTML before normalization so list and heading structure
// survives into the extraction prompt.
type Converter interface {
	Convert(html string) (string, error)
}
