package pipeline

import (
	"context"

	"github.com/fwojciec/skillet"
	"github.com/fwojciec/skillet/classify"
)

// Options configure one ExtractFromURL call.
type Options struct {
	// MaxRecipes caps how many discovered candidates the batch processes.
	// Zero means no cap.
	MaxRecipes int

	// Progress, when set, receives batch progress snapshots.
	Progress ProgressFunc
}

// RouteResult is the outcome of one routed extraction. Batch mode fills
// Summary and Results; single-page mode fills Result.
type RouteResult struct {
	Classification skillet.Classification
	Summary        *skillet.BatchSummary
	Results        []skillet.ExtractionResult
	Result         *skillet.ExtractionResult
}

// Batched reports whether the call went through discovery and batch
// extraction rather than a single-page scrape.
func (r *RouteResult) Batched() bool {
	return r.Summary != nil
}

// Router is the pipeline's single entry point. It classifies the input
// URL and dispatches to discovery plus batch extraction or to a direct
// single-page extraction.
type Router struct {
	discoverer   skillet.Discoverer
	orchestrator *Orchestrator
}

// NewRouter returns a Router over the given discoverer and orchestrator.
func NewRouter(discoverer skillet.Discoverer, orchestrator *Orchestrator) *Router {
	return &Router{discoverer: discoverer, orchestrator: orchestrator}
}

// ExtractFromURL classifies the URL and runs the matching extraction
// mode. URLs classified for discovery, and URLs structurally matching a
// popular-listing pattern regardless of classification, go through
// discovery and batch extraction. Everything else is scraped directly.
// Per-page work is bounded by the orchestrator's page timeout either way;
// a timed-out page is recorded as a failure, not returned as an error.
func (r *Router) ExtractFromURL(ctx context.Context, rawURL string, opts Options) (*RouteResult, error) {
	c := classify.Classify(rawURL)
	result := &RouteResult{Classification: c}

	if c.Action == skillet.ActionDiscover || classify.IsPopularListing(rawURL) {
		candidates, err := r.discoverer.Discover(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		results, summary, err := r.orchestrator.Run(ctx, candidates, opts.MaxRecipes, opts.Progress)
		if err != nil {
			return nil, err
		}
		result.Results = results
		result.Summary = summary
		return result, nil
	}

	single := r.orchestrator.ExtractOne(ctx, skillet.CandidateURL{URL: rawURL})
	result.Result = &single
	return result, nil
}
