// Package slog provides logging decorators for the pipeline's services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/skillet"
)

// Ensure LoggingScraper implements skillet.Scraper.
var _ skillet.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with operation logging.
type LoggingScraper struct {
	next   skillet.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next skillet.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the operation.
func (s *LoggingScraper) Scrape(ctx context.Context, url string) (page *skillet.ScrapedPage, err error) {
	defer func(begin time.Time) {
		var method skillet.ScrapeMethod
		var images int
		if page != nil {
			method = page.Method
			images = len(page.ImageCandidates)
		}
		s.logger.Info("scrape",
			"url", url,
			"method", method,
			"images", images,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx, url)
}
