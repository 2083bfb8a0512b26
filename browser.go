package skillet

import (
	"context"
	"time"
)

// Box is an element bounding box in page coordinates.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Browser is the narrow browser-automation capability the pipeline depends
// on. Core orchestration must not assume a specific automation engine;
// stealth configuration (user agent, headers, viewport) is a concern of
// the implementation, not of callers.
type Browser interface {
	// OpenPage navigates to the URL and waits for the DOM content loaded
	// event. The returned Page must be closed on every exit path.
	OpenPage(ctx context.Context, url string) (Page, error)

	// Close releases browser resources.
	// Must be called when the Browser is no longer needed.
	Close() error
}

// Page is a single open browser page (tab). Pages are scoped to one
// extraction and are not safe for concurrent use.
type Page interface {
	// WaitIdle waits until network activity settles, up to timeout.
	WaitIdle(ctx context.Context, timeout time.Duration) error

	// WaitSelector waits until an element matching the selector exists.
	WaitSelector(ctx context.Context, selector string, timeout time.Duration) error

	// ScrollBy scrolls the viewport by the given offsets.
	ScrollBy(ctx context.Context, dx, dy float64) error

	// ScrollIntoView scrolls the first element matching the selector into
	// view. Returns false if no element matches.
	ScrollIntoView(ctx context.Context, selector string) (bool, error)

	// HTML returns the current rendered document HTML.
	HTML(ctx context.Context) (string, error)

	// Boxes returns bounding boxes for all elements matching the selector,
	// in document order.
	Boxes(ctx context.Context, selector string) ([]Box, error)

	// Screenshot captures the region, or the viewport when region is nil.
	Screenshot(ctx context.Context, region *Box) ([]byte, error)

	// Close releases the page.
	Close() error
}
