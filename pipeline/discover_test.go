package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/skillet"
	"github.com/fwojciec/skillet/mock"
	"github.com/fwojciec/skillet/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const homepageHTML = `<html><body>
<nav>
<a href="/recipes/dinner">Dinner Recipes</a>
</nav>
<a href="/recipes/pasta-carbonara">Pasta Carbonara</a>
<a href="/recipes/beef-stew">Beef Stew</a>
<a href="/about">About</a>
<a href="https://other.example/recipes/stolen">Elsewhere</a>
</body></html>`

func fastDelays() []time.Duration {
	return []time.Duration{time.Millisecond}
}

func newBrowser(html string) *mock.Browser {
	return &mock.Browser{
		OpenPageFn: func(ctx context.Context, url string) (skillet.Page, error) {
			return &mock.Page{
				HTMLFn: func(ctx context.Context) (string, error) { return html, nil },
			}, nil
		},
	}
}

func TestDiscoverer_Discover(t *testing.T) {
	t.Parallel()

	t.Run("unions strategies and dedupes by exact URL", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *skillet.URLFilter) ([]string, error) {
				return []string{
					"https://example.com/recipes/pasta-carbonara",
					"https://example.com/recipes/lemon-tart",
				}, nil
			},
		}
		d := pipeline.NewDiscoverer(sitemaps, newBrowser(homepageHTML), nil,
			pipeline.WithDiscoverRetryDelays(fastDelays()),
			pipeline.WithDiscoverIdleTimeout(0),
		)

		got, err := d.Discover(context.Background(), "https://example.com/")
		require.NoError(t, err)

		seen := make(map[string]int)
		for _, c := range got {
			seen[c.URL]++
		}
		for url, n := range seen {
			assert.Equal(t, 1, n, "duplicate candidate %s", url)
		}
		assert.Contains(t, seen, "https://example.com/recipes/lemon-tart")
		assert.Contains(t, seen, "https://example.com/recipes/pasta-carbonara")
		assert.NotContains(t, seen, "https://other.example/recipes/stolen", "cross-origin candidate")
	})

	t.Run("sitemap candidates carry the sitemap method", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *skillet.URLFilter) ([]string, error) {
				return []string{"https://example.com/recipes/lemon-tart"}, nil
			},
		}
		d := pipeline.NewDiscoverer(sitemaps, newBrowser("<html><body></body></html>"), nil,
			pipeline.WithDiscoverRetryDelays(fastDelays()),
			pipeline.WithDiscoverIdleTimeout(0),
		)

		got, err := d.Discover(context.Background(), "https://example.com/")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, skillet.DiscoverySitemap, got[0].Method)
	})

	t.Run("one failing strategy does not abort the others", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *skillet.URLFilter) ([]string, error) {
				return nil, skillet.Errorf(skillet.EUNAVAILABLE, "sitemap fetch failed")
			},
		}
		d := pipeline.NewDiscoverer(sitemaps, newBrowser(homepageHTML), nil,
			pipeline.WithDiscoverRetryDelays(fastDelays()),
			pipeline.WithDiscoverIdleTimeout(0),
		)

		got, err := d.Discover(context.Background(), "https://example.com/")
		require.NoError(t, err)
		assert.NotEmpty(t, got, "browser strategies should still contribute")
	})

	t.Run("static fallback when all strategies fail", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *skillet.URLFilter) ([]string, error) {
				return nil, skillet.Errorf(skillet.EUNAVAILABLE, "down")
			},
		}
		browser := &mock.Browser{
			OpenPageFn: func(ctx context.Context, url string) (skillet.Page, error) {
				return nil, skillet.Errorf(skillet.EUNAVAILABLE, "browser down")
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return homepageHTML, nil
			},
		}
		d := pipeline.NewDiscoverer(sitemaps, browser, fetcher,
			pipeline.WithDiscoverRetryDelays(fastDelays()),
		)

		got, err := d.Discover(context.Background(), "https://example.com/")
		require.NoError(t, err)
		require.NotEmpty(t, got)
		for _, c := range got {
			assert.Equal(t, skillet.DiscoveryStaticFallback, c.Method)
			assert.Contains(t, c.URL, "https://example.com/")
		}
	})

	t.Run("discovery exhausted when fallback yields nothing", func(t *testing.T) {
		t.Parallel()

		sitemaps := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *skillet.URLFilter) ([]string, error) {
				return nil, skillet.Errorf(skillet.EUNAVAILABLE, "down")
			},
		}
		browser := &mock.Browser{
			OpenPageFn: func(ctx context.Context, url string) (skillet.Page, error) {
				return nil, skillet.Errorf(skillet.EUNAVAILABLE, "browser down")
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html><body><a href=\"/about\">About</a></body></html>", nil
			},
		}
		d := pipeline.NewDiscoverer(sitemaps, browser, fetcher,
			pipeline.WithDiscoverRetryDelays(fastDelays()),
		)

		_, err := d.Discover(context.Background(), "https://example.com/")
		require.Error(t, err)
		assert.Equal(t, skillet.ENOTFOUND, skillet.ErrorCode(err))
	})

	t.Run("invalid entry url", func(t *testing.T) {
		t.Parallel()

		d := pipeline.NewDiscoverer(&mock.SitemapService{}, &mock.Browser{}, nil)
		_, err := d.Discover(context.Background(), "not a url")
		require.Error(t, err)
		assert.Equal(t, skillet.EINVALID, skillet.ErrorCode(err))
	})
}

func TestRecipeURLFilter(t *testing.T) {
	t.Parallel()

	filter := pipeline.RecipeURLFilter()

	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/recipes/pasta-carbonara", true},
		{"https://example.com/recipe/beef-stew", true},
		{"https://example.com/baking/chocolate-cake", true},
		{"https://example.com/recipes/", false},
		{"https://example.com/category/dinner", false},
		{"https://example.com/tag/vegan", false},
		{"https://example.com/recipes/pasta.jpg", false},
		{"https://example.com/about", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, filter.Match(tt.url))
		})
	}
}
