// Package pipeline orchestrates recipe extraction: multi-strategy URL
// discovery, a bounded-concurrency batch runner, and the smart router
// that is the pipeline's single entry point.
package pipeline

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/skillet"
	"github.com/fwojciec/skillet/bloom"
	"github.com/fwojciec/skillet/goquery"
)

// Discovery configuration defaults.
const (
	// maxNavigationCategories caps how many category links the navigation
	// strategy follows one level deep.
	maxNavigationCategories = 5

	// navigationExpectedURLs sizes the revisit bloom filter.
	navigationExpectedURLs = 10000

	// navigationFalsePositiveRate is acceptable for a revisit guard; a
	// false positive only skips one category page.
	navigationFalsePositiveRate = 0.01

	// homepageScrollSteps is how many times the homepage strategies scroll
	// to trigger lazy-loaded content.
	homepageScrollSteps = 3

	discoverIdleTimeout = 5 * time.Second
)

// RecipeURLFilter returns the sitemap filter for recipe pages: the URL
// must contain a recipe path signal and must not match the exclusion list
// of index, taxonomy, and asset patterns.
func RecipeURLFilter() *skillet.URLFilter {
	return &skillet.URLFilter{
		Include: []*regexp.Regexp{
			regexp.MustCompile(`(?i)/(recipes?|dish|meal)s?/[^/]+`),
			regexp.MustCompile(`(?i)-(recipe|cake|soup|salad|bread|pie|stew|curry|pasta|cookies?)(/|$|\?)`),
		},
		Exclude: []*regexp.Regexp{
			regexp.MustCompile(`(?i)/(category|categories|tag|tags|page|author|about|contact|privacy|search|feed|wp-content|wp-json)(/|$)`),
			regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp|svg|css|js|xml|pdf)(\?|$)`),
			regexp.MustCompile(`(?i)/recipes?/?$`),
		},
	}
}

var _ skillet.Discoverer = (*Discoverer)(nil)

// Discoverer implements skillet.Discoverer by running three strategies
// concurrently with isolated failure and unioning their results. A static
// HTML fallback runs only when all three strategies fail.
type Discoverer struct {
	sitemaps    skillet.SitemapService
	browser     skillet.Browser
	fetcher     skillet.Fetcher
	retryDelays []time.Duration
	idleTimeout time.Duration
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithDiscoverRetryDelays sets the waits between page-load attempts
// during discovery.
func WithDiscoverRetryDelays(delays []time.Duration) DiscovererOption {
	return func(d *Discoverer) { d.retryDelays = delays }
}

// WithDiscoverIdleTimeout bounds each wait for homepage network activity
// to settle.
func WithDiscoverIdleTimeout(timeout time.Duration) DiscovererOption {
	return func(d *Discoverer) { d.idleTimeout = timeout }
}

// NewDiscoverer returns a Discoverer using the given collaborators. The
// fetcher serves only the static fallback and may be nil to disable it.
func NewDiscoverer(sitemaps skillet.SitemapService, browser skillet.Browser, fetcher skillet.Fetcher, opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{
		sitemaps:    sitemaps,
		browser:     browser,
		fetcher:     fetcher,
		retryDelays: DefaultRetryDelays(),
		idleTimeout: discoverIdleTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// strategyResult carries one strategy's outcome; failures stay isolated
// here instead of aborting siblings.
type strategyResult struct {
	method skillet.DiscoveryMethod
	urls   []string
	err    error
}

// Discover runs the sitemap, homepage-DOM, and navigation strategies
// concurrently and returns the deduplicated same-origin union. If all
// three fail it falls back to a static HTML fetch; only when that also
// yields nothing does Discover return an error.
func (d *Discoverer) Discover(ctx context.Context, entryURL string) ([]skillet.CandidateURL, error) {
	origin, err := url.Parse(entryURL)
	if err != nil || origin.Host == "" {
		return nil, skillet.Errorf(skillet.EINVALID, "invalid entry url %q", entryURL)
	}

	results := make([]strategyResult, 3)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		urls, err := d.sitemapStrategy(ctx, entryURL)
		results[0] = strategyResult{skillet.DiscoverySitemap, urls, err}
	}()
	go func() {
		defer wg.Done()
		urls, err := d.homepageStrategy(ctx, entryURL)
		results[1] = strategyResult{skillet.DiscoveryHomepageDOM, urls, err}
	}()
	go func() {
		defer wg.Done()
		urls, err := d.navigationStrategy(ctx, entryURL)
		results[2] = strategyResult{skillet.DiscoveryNavigation, urls, err}
	}()
	wg.Wait()

	allFailed := true
	seen := make(map[string]bool)
	var candidates []skillet.CandidateURL
	for _, r := range results {
		if r.err != nil {
			continue
		}
		allFailed = false
		for _, raw := range r.urls {
			if seen[raw] || !sameOrigin(origin, raw) {
				continue
			}
			seen[raw] = true
			candidates = append(candidates, skillet.CandidateURL{URL: raw, Method: r.method})
		}
	}

	if allFailed {
		return d.staticFallback(ctx, entryURL, origin)
	}
	return candidates, nil
}

// sitemapStrategy delegates to the sitemap service with the recipe filter.
func (d *Discoverer) sitemapStrategy(ctx context.Context, entryURL string) ([]string, error) {
	return d.sitemaps.DiscoverURLs(ctx, entryURL, RecipeURLFilter())
}

// homepageStrategy loads the rendered homepage, scrolls to trigger lazy
// content, and harvests recipe-looking anchors.
func (d *Discoverer) homepageStrategy(ctx context.Context, entryURL string) ([]string, error) {
	html, err := d.renderedHTML(ctx, entryURL, homepageScrollSteps)
	if err != nil {
		return nil, err
	}
	return goquery.RecipeLinks(html, entryURL)
}

// navigationStrategy loads the homepage, collects navigation anchors
// whose text suggests recipe categories, and follows them one level deep
// harvesting recipe links from each. A bloom filter guards against
// revisiting pages the strategy has already loaded.
func (d *Discoverer) navigationStrategy(ctx context.Context, entryURL string) ([]string, error) {
	html, err := d.renderedHTML(ctx, entryURL, 1)
	if err != nil {
		return nil, err
	}
	navLinks, err := goquery.NavigationLinks(html, entryURL)
	if err != nil {
		return nil, err
	}

	visited := bloom.NewFilter(navigationExpectedURLs, navigationFalsePositiveRate)
	visited.Add(entryURL)

	var urls []string
	followed := 0
	for _, link := range navLinks {
		if followed >= maxNavigationCategories {
			break
		}
		if visited.Test(link) {
			continue
		}
		visited.Add(link)
		followed++

		categoryHTML, err := d.renderedHTML(ctx, link, 1)
		if err != nil {
			if ctx.Err() != nil {
				return urls, nil
			}
			continue
		}
		links, err := goquery.RecipeLinks(categoryHTML, link)
		if err != nil {
			continue
		}
		urls = append(urls, links...)
	}
	return urls, nil
}

// renderedHTML opens the URL in the browser with retry, scrolls the given
// number of steps with idle waits between them, and returns the final
// HTML. The page is closed before returning.
func (d *Discoverer) renderedHTML(ctx context.Context, pageURL string, scrollSteps int) (string, error) {
	page, err := withRetry(ctx, d.retryDelays, func(ctx context.Context) (skillet.Page, error) {
		return d.browser.OpenPage(ctx, pageURL)
	})
	if err != nil {
		return "", skillet.Errorf(skillet.EUNAVAILABLE, "loading %s: %v", pageURL, err)
	}
	defer page.Close()

	_ = page.WaitIdle(ctx, d.idleTimeout)
	for i := 0; i < scrollSteps; i++ {
		_ = page.ScrollBy(ctx, 0, 1200)
		_ = page.WaitIdle(ctx, d.idleTimeout)
	}
	return page.HTML(ctx)
}

// anchorHref matches href attributes in raw HTML for the static fallback,
// which must work without a DOM parser when browser automation is down.
var anchorHref = regexp.MustCompile(`(?i)<a\s[^>]*href=["']([^"'#]+)["']`)

// staticFallback fetches the raw homepage over plain HTTP and regex-scans
// anchors for same-origin recipe-path links. Last resort only.
func (d *Discoverer) staticFallback(ctx context.Context, entryURL string, origin *url.URL) ([]skillet.CandidateURL, error) {
	if d.fetcher == nil {
		return nil, skillet.Errorf(skillet.EUNAVAILABLE, "all discovery strategies failed for %s", entryURL)
	}

	body, err := d.fetcher.Fetch(ctx, entryURL)
	if err != nil {
		return nil, skillet.Errorf(skillet.ENOTFOUND, "discovery exhausted for %s: static fallback: %v", entryURL, err)
	}

	filter := RecipeURLFilter()
	seen := make(map[string]bool)
	var candidates []skillet.CandidateURL
	for _, m := range anchorHref.FindAllStringSubmatch(body, -1) {
		ref, err := url.Parse(strings.TrimSpace(m[1]))
		if err != nil {
			continue
		}
		resolved := origin.ResolveReference(ref).String()
		if seen[resolved] || !sameOrigin(origin, resolved) || !filter.Match(resolved) {
			continue
		}
		seen[resolved] = true
		candidates = append(candidates, skillet.CandidateURL{URL: resolved, Method: skillet.DiscoveryStaticFallback})
	}

	if len(candidates) == 0 {
		return nil, skillet.Errorf(skillet.ENOTFOUND, "discovery exhausted for %s", entryURL)
	}
	return candidates, nil
}

// sameOrigin reports whether the resolved URL shares the entry URL's host.
func sameOrigin(origin *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, origin.Host)
}
