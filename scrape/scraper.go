// Package scrape loads recipe pages through browser automation and
// extracts their content, preferring structured data over heuristics.
package scrape

import (
	"context"
	"time"

	"github.com/fwojciec/skillet"
	"github.com/fwojciec/skillet/goquery"
)

// Defaults tuned for recipe sites with lazy-loaded content.
const (
	DefaultIdleTimeout = 5 * time.Second
	DefaultSettleDelay = 2 * time.Second

	// scrollStep approximates one and a half viewport heights, enough to
	// trigger most lazy loaders without skipping past content.
	scrollStep = 1200
)

// DefaultRetryDelays spaces navigation retries linearly.
var DefaultRetryDelays = []time.Duration{1 * time.Second, 2 * time.Second, 3 * time.Second}

var _ skillet.Scraper = (*Scraper)(nil)

// Scraper implements skillet.Scraper on top of a skillet.Browser. It
// tries the JSON-LD fast path first and falls back to heuristic content
// loading when no complete structured recipe is present.
type Scraper struct {
	browser     skillet.Browser
	converter   skillet.Converter
	extractor   skillet.ContentExtractor
	retryDelays []time.Duration
	idleTimeout time.Duration
	settleDelay time.Duration
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

// WithConverter sets the HTML to Markdown converter applied to fallback
// content before it reaches the language model.
func WithConverter(c skillet.Converter) ScraperOption {
	return func(s *Scraper) { s.converter = c }
}

// WithContentExtractor sets the full-page content extractor used when no
// recipe container selector matches.
func WithContentExtractor(e skillet.ContentExtractor) ScraperOption {
	return func(s *Scraper) { s.extractor = e }
}

// WithRetryDelays sets the waits between navigation attempts. The number
// of delays determines the number of retries.
func WithRetryDelays(delays []time.Duration) ScraperOption {
	return func(s *Scraper) { s.retryDelays = delays }
}

// WithIdleTimeout bounds each wait for network activity to settle.
func WithIdleTimeout(d time.Duration) ScraperOption {
	return func(s *Scraper) { s.idleTimeout = d }
}

// WithSettleDelay sets the extra wait granted to pages whose content
// still looks under-loaded after scrolling.
func WithSettleDelay(d time.Duration) ScraperOption {
	return func(s *Scraper) { s.settleDelay = d }
}

// NewScraper returns a Scraper driving the given browser.
func NewScraper(browser skillet.Browser, opts ...ScraperOption) *Scraper {
	s := &Scraper{
		browser:     browser,
		retryDelays: DefaultRetryDelays,
		idleTimeout: DefaultIdleTimeout,
		settleDelay: DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape loads the URL and extracts its content. Navigation is retried
// with linear backoff; all other failures degrade to partial results
// rather than erroring.
func (s *Scraper) Scrape(ctx context.Context, url string) (*skillet.ScrapedPage, error) {
	page, err := s.openWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	html, err := page.HTML(ctx)
	if err != nil {
		return nil, skillet.Errorf(skillet.EUNAVAILABLE, "reading page html: %v", err)
	}

	if jr, ok := goquery.ExtractJSONLDRecipe(html); ok && jr.Complete() {
		return &skillet.ScrapedPage{
			URL:             url,
			Method:          skillet.MethodStructuredData,
			Structured:      jr.Recipe(),
			ImageCandidates: goquery.ImageCandidates(html, url),
			PDFLinks:        goquery.PDFLinks(html, url),
		}, nil
	}

	html = s.loadContent(ctx, page, html)

	return &skillet.ScrapedPage{
		URL:             url,
		Method:          skillet.MethodHTMLFallback,
		TextContent:     s.textContent(html),
		ImageCandidates: goquery.ImageCandidates(html, url),
		PDFLinks:        goquery.PDFLinks(html, url),
	}, nil
}

// openWithRetry navigates to the URL, retrying transient failures with
// linearly increasing delays.
func (s *Scraper) openWithRetry(ctx context.Context, url string) (skillet.Page, error) {
	var lastErr error
	for attempt := 0; attempt <= len(s.retryDelays); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, skillet.Errorf(skillet.ETIMEOUT, "navigation canceled: %v", ctx.Err())
			case <-time.After(s.retryDelays[attempt-1]):
			}
		}
		page, err := s.browser.OpenPage(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, skillet.Errorf(skillet.EUNAVAILABLE, "navigating to %s: %v", url, lastErr)
}

// loadContent coaxes lazy-loaded recipe content onto the page and returns
// the freshest HTML snapshot. Interaction errors are ignored; the best
// snapshot obtained so far wins.
func (s *Scraper) loadContent(ctx context.Context, page skillet.Page, html string) string {
	_ = page.WaitIdle(ctx, s.idleTimeout)

	s.scrollToward(ctx, page, goquery.IngredientSelectors)
	_ = page.WaitIdle(ctx, s.idleTimeout)

	if snapshot, err := page.HTML(ctx); err == nil {
		html = snapshot
	}
	if !goquery.HasIngredientKeywords(html) {
		_ = page.ScrollBy(ctx, 0, scrollStep)
		_ = page.WaitIdle(ctx, s.idleTimeout)
	}

	s.scrollToward(ctx, page, goquery.InstructionSelectors)
	_ = page.WaitIdle(ctx, s.idleTimeout)

	if snapshot, err := page.HTML(ctx); err == nil {
		html = snapshot
	}
	if goquery.Stats(html).UnderLoaded() {
		select {
		case <-ctx.Done():
			return html
		case <-time.After(s.settleDelay):
		}
		if snapshot, err := page.HTML(ctx); err == nil {
			html = snapshot
		}
	}
	return html
}

// scrollToward scrolls the first matching selector into view, or one step
// down the page when none of the selectors match.
func (s *Scraper) scrollToward(ctx context.Context, page skillet.Page, selectors []string) {
	for _, selector := range selectors {
		found, err := page.ScrollIntoView(ctx, selector)
		if err == nil && found {
			return
		}
	}
	_ = page.ScrollBy(ctx, 0, scrollStep)
}

// textContent extracts fallback text from the final HTML snapshot. A
// matched recipe container is preferred; otherwise the content extractor
// trims the full page. Markdown conversion keeps list structure legible
// for the model.
func (s *Scraper) textContent(html string) string {
	content := html
	if goquery.HasRecipeContainer(html) {
		content = goquery.RecipeContainerHTML(html)
	} else if s.extractor != nil {
		if result, err := s.extractor.Extract(html); err == nil && result.ContentHTML != "" {
			content = result.ContentHTML
		}
	}

	if s.converter != nil {
		if markdown, err := s.converter.Convert(content); err == nil && markdown != "" {
			return markdown
		}
	}
	return goquery.RecipeContainerText(html)
}
