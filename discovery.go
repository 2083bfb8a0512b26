package skillet

import (
	"context"
	"regexp"
)

// DiscoveryMethod identifies which strategy found a candidate URL.
type DiscoveryMethod string

// Discovery strategies.
const (
	DiscoverySitemap        DiscoveryMethod = "sitemap"
	DiscoveryHomepageDOM    DiscoveryMethod = "homepage-dom"
	DiscoveryNavigation     DiscoveryMethod = "navigation"
	DiscoveryStaticFallback DiscoveryMethod = "static-fallback"
)

// CandidateURL is a URL that may point to a recipe page, not yet verified.
// Candidates are deduplicated by exact URL string within one discovery run
// and consumed exactly once by a batch worker.
type CandidateURL struct {
	URL    string
	Method DiscoveryMethod
}

// Discoverer finds candidate recipe URLs on a site. Implementations run
// several strategies concurrently with isolated failure and return the
// deduplicated same-origin union.
type Discoverer interface {
	Discover(ctx context.Context, entryURL string) ([]CandidateURL, error)
}

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs probes conventional sitemap locations and robots.txt
	// directives, resolves sitemap indexes recursively, and returns the
	// <loc> entries that pass the filter. If filter is nil, all URLs are
	// returned.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns - if set, only URLs matching at least one pattern
	// are included.
	Include []*regexp.Regexp

	// Exclude patterns - URLs matching any pattern are excluded.
	// Exclude is applied after Include.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// If the filter is nil, all URLs pass.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}

	if len(f.Include) > 0 {
		matched := false
		for _, re := range f.Include {
			if re.MatchString(url) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, re := range f.Exclude {
		if re.MatchString(url) {
			return false
		}
	}

	return true
}
