// Package pdf extracts recipes from PDF documents by rendering them in a
// browser and vision-prompting sampled page screenshots.
package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/skillet"
)

// Rendering and sampling defaults.
const (
	// SampleStride picks page indices 0, 5, 10 and so on. The first page
	// is always sampled; recipes on skipped pages are a known coverage
	// gap accepted for cost.
	SampleStride = 5

	// pageSurfaceSelector matches rendered PDF page surfaces across the
	// embedded viewer variants.
	pageSurfaceSelector = `.page, embed[type="application/pdf"], canvas`

	DefaultSurfaceTimeout = 10 * time.Second

	// minSurfaceDimension rejects degenerate bounding boxes that would
	// screenshot to nothing.
	minSurfaceDimension = 50
)

// emptySentinel is what the model returns when a sampled page holds no
// recipe.
const emptySentinel = "no recipe"

const pagePrompt = `This image is one page of a PDF document. If it contains a recipe,
return ONLY a JSON object of the form
{"title": "...", "ingredients": ["..."], "instructions": ["..."]}
with every ingredient and every instruction found on the page.
If the page contains no recipe, return exactly the text "no recipe".`

// Extractor renders PDFs through a skillet.Browser and extracts a recipe
// with a vision model.
type Extractor struct {
	browser        skillet.Browser
	vision         skillet.VisionCompleter
	sampleStride   int
	surfaceTimeout time.Duration
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithSampleStride sets the page sampling interval.
func WithSampleStride(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.sampleStride = n
		}
	}
}

// WithSurfaceTimeout bounds the wait for the first rendered page surface.
func WithSurfaceTimeout(d time.Duration) ExtractorOption {
	return func(e *Extractor) { e.surfaceTimeout = d }
}

// NewExtractor returns an Extractor over the given browser and vision
// model.
func NewExtractor(browser skillet.Browser, vision skillet.VisionCompleter, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		browser:        browser,
		vision:         vision,
		sampleStride:   SampleStride,
		surfaceTimeout: DefaultSurfaceTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// pageOutcome records what happened on one sampled page for the failure
// diagnostics.
type pageOutcome struct {
	index   int
	outcome string
}

// Extract renders the PDF at the URL, samples its pages, and returns the
// first complete recipe found. When no sampled page yields one, the error
// carries per-page diagnostics.
func (e *Extractor) Extract(ctx context.Context, url string) (*skillet.Recipe, error) {
	page, err := e.browser.OpenPage(ctx, url)
	if err != nil {
		return nil, skillet.Errorf(skillet.EUNAVAILABLE, "opening pdf %s: %v", url, err)
	}
	defer page.Close()

	if err := page.WaitSelector(ctx, pageSurfaceSelector, e.surfaceTimeout); err != nil {
		return nil, skillet.Errorf(skillet.EUNPARSABLE, "no rendered pdf page surface at %s", url)
	}

	boxes, err := e.renderAllPages(ctx, page)
	if err != nil {
		return nil, err
	}

	var outcomes []pageOutcome
	for i := 0; i < len(boxes); i += e.sampleStride {
		box := boxes[i]
		if box.Width < minSurfaceDimension || box.Height < minSurfaceDimension {
			outcomes = append(outcomes, pageOutcome{i, "degenerate page surface, skipped"})
			continue
		}

		shot, err := page.Screenshot(ctx, &box)
		if err != nil {
			outcomes = append(outcomes, pageOutcome{i, fmt.Sprintf("screenshot failed: %v", err)})
			continue
		}

		response, err := e.vision.CompleteWithImage(ctx, pagePrompt, shot)
		if err != nil {
			if ctx.Err() != nil {
				return nil, skillet.Errorf(skillet.ETIMEOUT, "pdf extraction canceled: %v", ctx.Err())
			}
			outcomes = append(outcomes, pageOutcome{i, fmt.Sprintf("vision call failed: %v", err)})
			continue
		}

		recipe, outcome := parsePageResponse(response)
		if recipe != nil {
			return recipe, nil
		}
		outcomes = append(outcomes, pageOutcome{i, outcome})
	}

	return nil, skillet.Errorf(skillet.ENOTFOUND, "no recipe in sampled pdf pages: %s", formatOutcomes(outcomes))
}

// renderAllPages scrolls through the whole document to force lazy page
// rendering, then returns the page surface boxes in document order.
func (e *Extractor) renderAllPages(ctx context.Context, page skillet.Page) ([]skillet.Box, error) {
	boxes, err := page.Boxes(ctx, pageSurfaceSelector)
	if err != nil || len(boxes) == 0 {
		return nil, skillet.Errorf(skillet.EUNPARSABLE, "locating pdf pages: %v", err)
	}

	// Scroll to the bottom of the document one page height at a time.
	last := boxes[len(boxes)-1]
	totalHeight := last.Y + last.Height
	step := boxes[0].Height
	if step <= 0 {
		step = 800
	}
	for offset := 0.0; offset < totalHeight; offset += step {
		if err := page.ScrollBy(ctx, 0, step); err != nil {
			break
		}
	}

	// Boxes may grow as lazy pages render.
	if refreshed, err := page.Boxes(ctx, pageSurfaceSelector); err == nil && len(refreshed) >= len(boxes) {
		boxes = refreshed
	}
	return boxes, nil
}

// pageResponse is the JSON shape the vision model is instructed to
// return.
type pageResponse struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// parsePageResponse turns a model response into a Recipe, or explains why
// it did not qualify.
func parsePageResponse(response string) (*skillet.Recipe, string) {
	cleaned := stripFences(response)
	if cleaned == "" || strings.EqualFold(cleaned, emptySentinel) {
		return nil, "no recipe on page"
	}

	var parsed pageResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, "unparsable model output"
	}

	recipe := &skillet.Recipe{
		Title:        strings.TrimSpace(parsed.Title),
		Instructions: parsed.Instructions,
	}
	for _, ing := range parsed.Ingredients {
		if strings.TrimSpace(ing) == "" {
			continue
		}
		recipe.Ingredients = append(recipe.Ingredients, skillet.PlainIngredient(ing))
	}

	if !recipe.Complete() {
		return nil, "incomplete recipe on page"
	}
	return recipe, ""
}

// stripFences removes a markdown code fence around a JSON response.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

func formatOutcomes(outcomes []pageOutcome) string {
	parts := make([]string, len(outcomes))
	for i, o := range outcomes {
		parts[i] = fmt.Sprintf("page %d: %s", o.index, o.outcome)
	}
	return strings.Join(parts, "; ")
}
