package scrape_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/skillet"
	"github.com/fwojciec/skillet/mock"
	"github.com/fwojciec/skillet/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonldPage = `<html><head>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Shakshuka",
  "recipeCategory": "breakfast",
  "recipeIngredient": ["6 eggs", "1 can crushed tomatoes", "1 onion"],
  "recipeInstructions": ["Saute the onion.", "Add tomatoes and simmer.", "Crack in the eggs."],
  "image": "https://example.com/images/shakshuka.jpg"
}
</script>
</head><body>
<img src="https://example.com/images/hero.jpg" width="800" height="600">
<a href="/recipes/shakshuka.pdf">Print PDF</a>
</body></html>`

const heuristicPage = `<html><body>
<article class="recipe">
<h1>Weeknight Chili</h1>
<ul class="ingredients">
<li>2 tablespoons olive oil</li>
<li>1 pound ground beef</li>
<li>2 cups crushed tomatoes</li>
</ul>
<div class="instructions">
<p>Heat the oil and brown the beef. Stir in the tomatoes and simmer for thirty minutes, then season to taste and serve hot with cornbread on the side.</p>
</div>
</article>
</body></html>`

func TestScraper_Scrape_StructuredDataFastPath(t *testing.T) {
	t.Parallel()

	page := &mock.Page{
		HTMLFn: func(ctx context.Context) (string, error) {
			return jsonldPage, nil
		},
	}
	var scrolls int
	page.ScrollByFn = func(ctx context.Context, dx, dy float64) error {
		scrolls++
		return nil
	}
	page.ScrollIntoViewFn = func(ctx context.Context, selector string) (bool, error) {
		scrolls++
		return true, nil
	}
	browser := &mock.Browser{
		OpenPageFn: func(ctx context.Context, url string) (skillet.Page, error) {
			return page, nil
		},
	}

	s := scrape.NewScraper(browser, scrape.WithSettleDelay(0))
	result, err := s.Scrape(context.Background(), "https://example.com/shakshuka")
	require.NoError(t, err)

	assert.Equal(t, skillet.MethodStructuredData, result.Method)
	require.NotNil(t, result.Structured)
	assert.Equal(t, "Shakshuka", result.Structured.Title)
	assert.True(t, result.Structured.Complete())
	assert.Empty(t, result.TextContent)
	assert.Contains(t, result.ImageCandidates, "https://example.com/images/hero.jpg")
	assert.Equal(t, []string{"https://example.com/recipes/shakshuka.pdf"}, result.PDFLinks)

	assert.Zero(t, scrolls, "fast path must skip content loading")
	assert.Equal(t, 1, page.CloseCount)
}

func TestScraper_Scrape_HTMLFallback(t *testing.T) {
	t.Parallel()

	page := &mock.Page{
		HTMLFn: func(ctx context.Context) (string, error) {
			return heuristicPage, nil
		},
	}
	browser := &mock.Browser{
		OpenPageFn: func(ctx context.Context, url string) (skillet.Page, error) {
			return page, nil
		},
	}

	s := scrape.NewScraper(browser, scrape.WithSettleDelay(0))
	result, err := s.Scrape(context.Background(), "https://example.com/chili")
	require.NoError(t, err)

	assert.Equal(t, skillet.MethodHTMLFallback, result.Method)
	assert.Nil(t, result.Structured)
	assert.Contains(t, result.TextContent, "ground beef")
	assert.Contains(t, result.TextContent, "brown the beef")
	assert.Equal(t, 1, page.CloseCount)
}

func TestScraper_Scrape_FallbackUsesConverter(t *testing.T) {
	t.Parallel()

	page := &mock.Page{
		HTMLFn: func(ctx context.Context) (string, error) {
			return heuristicPage, nil
		},
	}
	browser := &mock.Browser{
		OpenPageFn: func(ctx context.Context, url string) (skillet.Page, error) {
			return page, nil
		},
	}
	converter := &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			require.Contains(t, html, "olive oil")
			return "- 2 tablespoons olive oil", nil
		},
	}

	s := scrape.NewScraper(browser, scrape.WithConverter(converter), scrape.WithSettleDelay(0))
	result, err := s.Scrape(context.Background(), "https://example.com/chili")
	require.NoError(t, err)
	assert.Equal(t, "- 2 tablespoons olive oil", result.TextContent)
}

func TestScraper_Scrape_FallbackUsesContentExtractor(t *testing.T) {
	t.Parallel()

	// No recipe container matches, so the content extractor trims the page.
	bare := `<html><body><div>` + strings.Repeat("chatter ", 40) + `</div></body></html>`
	page := &mock.Page{
		HTMLFn: func(ctx context.Context) (string, error) {
			return bare, nil
		},
	}
	browser := &mock.Browser{
		OpenPageFn: func(ctx context.Context, url string) (skillet.Page, error) {
			return page, nil
		},
	}
	extractor := &mock.ContentExtractor{
		ExtractFn: func(html string) (*skillet.ExtractResult, error) {
			return &skillet.ExtractResult{ContentHTML: "<p>2 cups flour</p>"}, nil
		},
	}
	converter := &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			assert.Equal(t, "<p>2 cups flour</p>", html)
			return "2 cups flour", nil
		},
	}

	s := scrape.NewScraper(browser,
		scrape.WithContentExtractor(extractor),
		scrape.WithConverter(converter),
		scrape.WithSettleDelay(0),
	)
	result, err := s.Scrape(context.Background(), "https://example.com/page")
	require.NoError(t, err)
	assert.Equal(t, "2 cups flour", result.TextContent)
}

func TestScraper_Scrape_RetriesNavigation(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		t.Parallel()

		page := &mock.Page{
			HTMLFn: func(ctx context.Context) (string, error) {
				return heuristicPage, nil
			},
		}
		var attempts int
		browser := &mock.Browser{
			OpenPageFn: func(ctx context.Context, url string) (skillet.Page, error) {
				attempts++
				if attempts < 3 {
					return nil, skillet.Errorf(skillet.EUNAVAILABLE, "net::ERR_CONNECTION_RESET")
				}
				return page, nil
			},
		}

		s := scrape.NewScraper(browser,
			scrape.WithRetryDelays([]time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}),
			scrape.WithSettleDelay(0),
		)
		_, err := s.Scrape(context.Background(), "https://example.com/chili")
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("fails after exhausting retries", func(t *testing.T) {
		t.Parallel()

		var attempts int
		browser := &mock.Browser{
			OpenPageFn: func(ctx context.Context, url string) (skillet.Page, error) {
				attempts++
				return nil, skillet.Errorf(skillet.EUNAVAILABLE, "net::ERR_NAME_NOT_RESOLVED")
			},
		}

		s := scrape.NewScraper(browser,
			scrape.WithRetryDelays([]time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}),
		)
		_, err := s.Scrape(context.Background(), "https://bad.example/")
		require.Error(t, err)
		assert.Equal(t, skillet.EUNAVAILABLE, skillet.ErrorCode(err))
		assert.Equal(t, 4, attempts, "one initial attempt plus three retries")
	})

	t.Run("stops retrying on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		var attempts int
		browser := &mock.Browser{
			OpenPageFn: func(ctx context.Context, url string) (skillet.Page, error) {
				attempts++
				cancel()
				return nil, skillet.Errorf(skillet.EUNAVAILABLE, "net::ERR_ABORTED")
			},
		}

		s := scrape.NewScraper(browser)
		_, err := s.Scrape(ctx, "https://example.com/")
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})
}

func TestScraper_Scrape_ClosesPageOnHTMLError(t *testing.T) {
	t.Parallel()

	page := &mock.Page{
		HTMLFn: func(ctx context.Context) (string, error) {
			return "", skillet.Errorf(skillet.EINTERNAL, "page crashed")
		},
	}
	browser := &mock.Browser{
		OpenPageFn: func(ctx context.Context, url string) (skillet.Page, error) {
			return page, nil
		},
	}

	s := scrape.NewScraper(browser)
	_, err := s.Scrape(context.Background(), "https://example.com/")
	require.Error(t, err)
	assert.Equal(t, 1, page.CloseCount)
}

func TestScraper_Scrape_IncompleteJSONLDFallsThrough(t *testing.T) {
	t.Parallel()

	// JSON-LD present but missing instructions, so the heuristic path runs.
	partial := `<html><head>
<script type="application/ld+json">
{"@type": "Recipe", "name": "Mystery", "recipeIngredient": ["1 egg"]}
</script>
</head><body>` + heuristicPage + `</body></html>`

	page := &mock.Page{
		HTMLFn: func(ctx context.Context) (string, error) {
			return partial, nil
		},
	}
	browser := &mock.Browser{
		OpenPageFn: func(ctx context.Context, url string) (skillet.Page, error) {
			return page, nil
		},
	}

	s := scrape.NewScraper(browser, scrape.WithSettleDelay(0))
	result, err := s.Scrape(context.Background(), "https://example.com/mystery")
	require.NoError(t, err)
	assert.Equal(t, skillet.MethodHTMLFallback, result.Method)
	assert.Nil(t, result.Structured)
}
