package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/skillet"
)

// Ensure LoggingDiscoverer implements skillet.Discoverer.
var _ skillet.Discoverer = (*LoggingDiscoverer)(nil)

// LoggingDiscoverer wraps a Discoverer with operation logging.
type LoggingDiscoverer struct {
	next   skillet.Discoverer
	logger *slog.Logger
}

// NewLoggingDiscoverer creates a new LoggingDiscoverer.
func NewLoggingDiscoverer(next skillet.Discoverer, logger *slog.Logger) *LoggingDiscoverer {
	return &LoggingDiscoverer{next: next, logger: logger}
}

// Discover delegates to the wrapped discoverer and logs the operation,
// including the per-strategy breakdown of found candidates.
func (d *LoggingDiscoverer) Discover(ctx context.Context, entryURL string) (candidates []skillet.CandidateURL, err error) {
	defer func(begin time.Time) {
		byMethod := make(map[skillet.DiscoveryMethod]int)
		for _, c := range candidates {
			byMethod[c.Method]++
		}
		d.logger.Info("discover",
			"url", entryURL,
			"count", len(candidates),
			"byMethod", byMethod,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Discover(ctx, entryURL)
}
