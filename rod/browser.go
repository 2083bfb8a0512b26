// Package rod implements the browser automation capability on go-rod
// with headless Chrome, browser recycling, and a non-automation profile.
package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/skillet"
	"github.com/go-rod/rod/lib/proto"
)

// Profile defaults presented to scraped sites.
const (
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

	viewportWidth  = 1280
	viewportHeight = 800
)

var _ skillet.Browser = (*Browser)(nil)

// Browser implements skillet.Browser on a managed headless Chrome
// instance. Safe for concurrent use; pages are independent targets.
type Browser struct {
	manager   *manager
	userAgent string
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser, *browserConfig)

type browserConfig struct {
	maxPages int64
}

// WithUserAgent overrides the user agent presented to sites.
func WithUserAgent(ua string) BrowserOption {
	return func(b *Browser, _ *browserConfig) { b.userAgent = ua }
}

// WithMaxPages sets how many pages are opened before the underlying
// Chrome instance is recycled.
func WithMaxPages(n int64) BrowserOption {
	return func(_ *Browser, c *browserConfig) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// NewBrowser launches headless Chrome. Close must be called when the
// Browser is no longer needed.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	b := &Browser{userAgent: DefaultUserAgent}
	cfg := &browserConfig{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(b, cfg)
	}

	m, err := newManager(cfg.maxPages)
	if err != nil {
		return nil, err
	}
	b.manager = m
	return b, nil
}

// OpenPage creates a page target, applies the profile, navigates to the
// URL, and waits for the DOM content loaded event.
func (b *Browser) OpenPage(ctx context.Context, url string) (skillet.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := b.manager.current().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	p = p.Context(ctx)

	if err := (proto.NetworkSetUserAgentOverride{UserAgent: b.userAgent}).Call(p); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("setting user agent: %w", err)
	}
	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("setting viewport: %w", err)
	}

	wait := p.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := p.Navigate(url); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	wait()

	b.manager.pageOpened()
	return &page{p: p}, nil
}

// Close releases browser resources.
func (b *Browser) Close() error {
	return b.manager.close()
}
