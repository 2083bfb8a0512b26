package mock

import (
	"context"

	"github.com/fwojciec/skillet"
)

var _ skillet.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of skillet.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, url string) (*skillet.ScrapedPage, error)
}

func (s *Scraper) Scrape(ctx context.Context, url string) (*skillet.ScrapedPage, error) {
	return s.ScrapeFn(ctx, url)
}

var _ skillet.Discoverer = (*Discoverer)(nil)

// Discoverer is a mock implementation of skillet.Discoverer.
type Discoverer struct {
	DiscoverFn func(ctx context.Context, entryURL string) ([]skillet.CandidateURL, error)
}

func (d *Discoverer) Discover(ctx context.Context, entryURL string) ([]skillet.CandidateURL, error) {
	return d.DiscoverFn(ctx, entryURL)
}

var _ skillet.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of skillet.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *skillet.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *skillet.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ skillet.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of skillet.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ skillet.RecipeExtractor = (*RecipeExtractor)(nil)

// RecipeExtractor is a mock implementation of skillet.RecipeExtractor.
type RecipeExtractor struct {
	ExtractFn func(ctx context.Context, cleanedText string, imageURL string) (*skillet.Recipe, error)
}

func (e *RecipeExtractor) Extract(ctx context.Context, cleanedText string, imageURL string) (*skillet.Recipe, error) {
	return e.ExtractFn(ctx, cleanedText, imageURL)
}

var _ skillet.ImageSelector = (*ImageSelector)(nil)

// ImageSelector is a mock implementation of skillet.ImageSelector.
type ImageSelector struct {
	SelectMainFn func(ctx context.Context, imageURLs []string) (string, error)
}

func (s *ImageSelector) SelectMain(ctx context.Context, imageURLs []string) (string, error) {
	return s.SelectMainFn(ctx, imageURLs)
}

var _ skillet.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of skillet.Normalizer.
type Normalizer struct {
	CleanFn func(text string) string

	// CleanCount tracks Clean calls so tests can assert the fast path
	// never touches the normalizer.
	CleanCount int
}

func (n *Normalizer) Clean(text string) string {
	n.CleanCount++
	if n.CleanFn == nil {
		return text
	}
	return n.CleanFn(text)
}

var _ skillet.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of skillet.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*skillet.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*skillet.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ skillet.Converter = (*Converter)(nil)

// Converter is a mock implementation of skillet.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
