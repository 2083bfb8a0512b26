package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/fwojciec/skillet"
	skillethttp "github.com/fwojciec/skillet/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("robots.txt directive", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		var srv *httptest.Server
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("User-agent: *\nSitemap: " + srv.URL + "/custom-sitemap.xml\n"))
		})
		mux.HandleFunc("/custom-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<?xml version="1.0"?>
				<urlset><url><loc>` + srv.URL + `/recipe/soup</loc></url>
				<url><loc>` + srv.URL + `/recipe/cake</loc></url></urlset>`))
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := skillethttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/recipe/soup", srv.URL + "/recipe/cake"}, urls)
	})

	t.Run("conventional path probing", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		var srv *httptest.Server
		mux.HandleFunc("/wp-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<urlset><url><loc>` + srv.URL + `/recipe/pie</loc></url></urlset>`))
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := skillethttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/recipe/pie"}, urls)
	})

	t.Run("sitemap index resolved recursively with dedup", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		var srv *httptest.Server
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<sitemapindex>
				<sitemap><loc>` + srv.URL + `/post-sitemap.xml</loc></sitemap>
				<sitemap><loc>` + srv.URL + `/post-sitemap.xml</loc></sitemap>
			</sitemapindex>`))
		})
		mux.HandleFunc("/post-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<urlset>
				<url><loc>` + srv.URL + `/recipe/stew</loc></url>
				<url><loc>` + srv.URL + `/recipe/stew</loc></url>
			</urlset>`))
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := skillethttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/recipe/stew"}, urls)
	})

	t.Run("filter applied", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		var srv *httptest.Server
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<urlset>
				<url><loc>` + srv.URL + `/recipe/soup</loc></url>
				<url><loc>` + srv.URL + `/category/soups</loc></url>
				<url><loc>` + srv.URL + `/about</loc></url>
			</urlset>`))
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		filter := &skillet.URLFilter{
			Include: []*regexp.Regexp{regexp.MustCompile(`/recipe/`)},
			Exclude: []*regexp.Regexp{regexp.MustCompile(`/category/`)},
		}

		s := skillethttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, filter)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/recipe/soup"}, urls)
	})

	t.Run("no sitemap returns empty slice", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		s := skillethttp.NewSitemapService(srv.Client())
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.NotNil(t, urls)
		assert.Empty(t, urls)
	})

	t.Run("invalid base URL", func(t *testing.T) {
		t.Parallel()

		s := skillethttp.NewSitemapService(nil)
		_, err := s.DiscoverURLs(context.Background(), "://bad", nil)

		assert.Equal(t, skillet.EINVALID, skillet.ErrorCode(err))
	})
}
