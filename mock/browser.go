// Package mock provides mock implementations of skillet interfaces for
// testing.
package mock

import (
	"context"
	"time"

	"github.com/fwojciec/skillet"
)

var _ skillet.Browser = (*Browser)(nil)

// Browser is a mock implementation of skillet.Browser.
type Browser struct {
	OpenPageFn func(ctx context.Context, url string) (skillet.Page, error)
	CloseFn    func() error
}

func (b *Browser) OpenPage(ctx context.Context, url string) (skillet.Page, error) {
	return b.OpenPageFn(ctx, url)
}

func (b *Browser) Close() error {
	if b.CloseFn == nil {
		return nil
	}
	return b.CloseFn()
}

var _ skillet.Page = (*Page)(nil)

// Page is a mock implementation of skillet.Page. Zero-value methods
// succeed with empty results so tests only stub what they assert on.
type Page struct {
	WaitIdleFn       func(ctx context.Context, timeout time.Duration) error
	WaitSelectorFn   func(ctx context.Context, selector string, timeout time.Duration) error
	ScrollByFn       func(ctx context.Context, dx, dy float64) error
	ScrollIntoViewFn func(ctx context.Context, selector string) (bool, error)
	HTMLFn           func(ctx context.Context) (string, error)
	BoxesFn          func(ctx context.Context, selector string) ([]skillet.Box, error)
	ScreenshotFn     func(ctx context.Context, region *skillet.Box) ([]byte, error)
	CloseFn          func() error

	// CloseCount tracks Close calls for release-discipline assertions.
	CloseCount int
}

func (p *Page) WaitIdle(ctx context.Context, timeout time.Duration) error {
	if p.WaitIdleFn == nil {
		return nil
	}
	return p.WaitIdleFn(ctx, timeout)
}

func (p *Page) WaitSelector(ctx context.Context, selector string, timeout time.Duration) error {
	if p.WaitSelectorFn == nil {
		return nil
	}
	return p.WaitSelectorFn(ctx, selector, timeout)
}

func (p *Page) ScrollBy(ctx context.Context, dx, dy float64) error {
	if p.ScrollByFn == nil {
		return nil
	}
	return p.ScrollByFn(ctx, dx, dy)
}

func (p *Page) ScrollIntoView(ctx context.Context, selector string) (bool, error) {
	if p.ScrollIntoViewFn == nil {
		return false, nil
	}
	return p.ScrollIntoViewFn(ctx, selector)
}

func (p *Page) HTML(ctx context.Context) (string, error) {
	if p.HTMLFn == nil {
		return "", nil
	}
	return p.HTMLFn(ctx)
}

func (p *Page) Boxes(ctx context.Context, selector string) ([]skillet.Box, error) {
	if p.BoxesFn == nil {
		return nil, nil
	}
	return p.BoxesFn(ctx, selector)
}

func (p *Page) Screenshot(ctx context.Context, region *skillet.Box) ([]byte, error) {
	if p.ScreenshotFn == nil {
		return nil, nil
	}
	return p.ScreenshotFn(ctx, region)
}

func (p *Page) Close() error {
	p.CloseCount++
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}
