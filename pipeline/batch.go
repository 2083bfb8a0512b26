package pipeline

import (
	"context"
	"errors"
	"math/rand"
	"net/url"
	"time"

	"github.com/fwojciec/skillet"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Batch defaults.
const (
	// DefaultConcurrency is the worker pool size.
	DefaultConcurrency = 6

	// DefaultPageTimeout bounds one page's scrape plus extraction so a
	// stalled page cannot stall the batch.
	DefaultPageTimeout = 45 * time.Second

	// Politeness delay bounds; each worker sleeps a randomized interval in
	// this range between URLs.
	DefaultDelayMin = 1 * time.Second
	DefaultDelayMax = 2 * time.Second
)

// ProgressFunc receives batch progress snapshots as results arrive. It is
// called from the collector only, never concurrently.
type ProgressFunc func(progress skillet.BatchProgress, result skillet.ExtractionResult)

// Orchestrator drains a queue of candidate URLs through the scraper and
// extraction services with a bounded worker pool, tolerating partial
// failure. One worker's error never aborts its siblings.
type Orchestrator struct {
	scraper     skillet.Scraper
	normalizer  skillet.Normalizer
	extractor   skillet.RecipeExtractor
	images      skillet.ImageSelector
	limiter     *DomainLimiter
	concurrency int
	pageTimeout time.Duration
	delayMin    time.Duration
	delayMax    time.Duration
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithConcurrency sets the worker pool size.
func WithConcurrency(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithPageTimeout sets the per-page extraction deadline.
func WithPageTimeout(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) { o.pageTimeout = d }
}

// WithPolitenessDelay sets the randomized sleep range between URLs.
// Zero bounds disable the delay, which tests rely on.
func WithPolitenessDelay(min, max time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.delayMin = min
		o.delayMax = max
	}
}

// WithDomainLimiter sets the per-domain rate limiter applied before each
// scrape.
func WithDomainLimiter(l *DomainLimiter) OrchestratorOption {
	return func(o *Orchestrator) { o.limiter = l }
}

// NewOrchestrator returns an Orchestrator over the given services.
func NewOrchestrator(scraper skillet.Scraper, normalizer skillet.Normalizer, extractor skillet.RecipeExtractor, images skillet.ImageSelector, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		scraper:     scraper,
		normalizer:  normalizer,
		extractor:   extractor,
		images:      images,
		concurrency: DefaultConcurrency,
		pageTimeout: DefaultPageTimeout,
		delayMin:    DefaultDelayMin,
		delayMax:    DefaultDelayMax,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run processes up to maxRecipes candidates through the worker pool and
// returns the completion-ordered results with a derived summary. At
// termination completed plus failed always equals the capped total, even
// when the context is canceled mid-batch.
func (o *Orchestrator) Run(ctx context.Context, candidates []skillet.CandidateURL, maxRecipes int, progress ProgressFunc) ([]skillet.ExtractionResult, *skillet.BatchSummary, error) {
	if maxRecipes > 0 && len(candidates) > maxRecipes {
		candidates = candidates[:maxRecipes]
	}
	total := len(candidates)
	started := time.Now()

	queue := make(chan skillet.CandidateURL, total)
	for _, c := range candidates {
		queue <- c
	}
	close(queue)

	resultCh := make(chan skillet.ExtractionResult, total)

	g := &errgroup.Group{}
	for i := 0; i < o.concurrency; i++ {
		g.Go(func() error {
			workerID := uuid.NewString()
			for cand := range queue {
				resultCh <- o.process(ctx, cand, workerID)
				o.politenessSleep(ctx)
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]skillet.ExtractionResult, 0, total)
	state := skillet.BatchProgress{Total: total}
	for result := range resultCh {
		if result.Success {
			state.Completed++
		} else {
			state.Failed++
		}
		results = append(results, result)
		if progress != nil {
			progress(state, result)
		}
	}

	return results, skillet.Summarize(results, time.Since(started)), nil
}

// ExtractOne runs a single candidate through the same per-page path the
// batch workers use, including the page timeout and acceptance check.
func (o *Orchestrator) ExtractOne(ctx context.Context, cand skillet.CandidateURL) skillet.ExtractionResult {
	return o.process(ctx, cand, uuid.NewString())
}

// process extracts one candidate URL. Failures are recorded in the
// result, never propagated.
func (o *Orchestrator) process(ctx context.Context, cand skillet.CandidateURL, workerID string) skillet.ExtractionResult {
	meta := skillet.ResultMetadata{
		URL:       cand.URL,
		Discovery: cand.Method,
		WorkerID:  workerID,
		StartedAt: time.Now(),
	}
	fail := func(reason string) skillet.ExtractionResult {
		meta.FinishedAt = time.Now()
		return skillet.ExtractionResult{Error: reason, Metadata: meta}
	}

	if ctx.Err() != nil {
		return fail("batch canceled")
	}

	pageCtx, cancel := context.WithTimeout(ctx, o.pageTimeout)
	defer cancel()

	if o.limiter != nil {
		if host := hostOf(cand.URL); host != "" {
			if err := o.limiter.Wait(pageCtx, host); err != nil {
				return fail("batch canceled")
			}
		}
	}

	page, err := o.scraper.Scrape(pageCtx, cand.URL)
	if err != nil {
		if errors.Is(pageCtx.Err(), context.DeadlineExceeded) {
			return fail("page timeout after " + o.pageTimeout.String())
		}
		return fail(skillet.ErrorMessage(err))
	}
	meta.Method = page.Method

	var recipe *skillet.Recipe
	switch page.Method {
	case skillet.MethodStructuredData:
		recipe = page.Structured
		meta.ContentHash = ContentHash(recipe.Title + joinInstructions(recipe))
	default:
		cleaned := page.TextContent
		if o.normalizer != nil {
			cleaned = o.normalizer.Clean(cleaned)
		}
		meta.ContentHash = ContentHash(cleaned)
		recipe, err = o.extractor.Extract(pageCtx, cleaned, "")
		if err != nil {
			if errors.Is(pageCtx.Err(), context.DeadlineExceeded) {
				return fail("page timeout after " + o.pageTimeout.String())
			}
			return fail(skillet.ErrorMessage(err))
		}
	}

	if recipe != nil && recipe.ImageURL == "" && o.images != nil && len(page.ImageCandidates) > 0 {
		if img, err := o.images.SelectMain(pageCtx, page.ImageCandidates); err == nil {
			recipe.ImageURL = img
		}
	}

	if !recipe.Complete() {
		return fail("missing essential content")
	}

	meta.FinishedAt = time.Now()
	return skillet.ExtractionResult{Success: true, Recipe: recipe, Metadata: meta}
}

// politenessSleep pauses a worker between URLs for a randomized interval.
func (o *Orchestrator) politenessSleep(ctx context.Context) {
	if o.delayMax <= 0 {
		return
	}
	delay := o.delayMin
	if span := o.delayMax - o.delayMin; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func joinInstructions(r *skillet.Recipe) string {
	var out string
	for _, step := range r.Instructions {
		out += "\n" + step
	}
	return out
}
