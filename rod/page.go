package rod

import (
	"context"
	"time"

	"github.com/fwojciec/skillet"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// requestIdleWindow is how long the network must stay quiet before
// WaitIdle considers the page settled.
const requestIdleWindow = 300 * time.Millisecond

// scrollIntoViewTimeout bounds the element lookup in ScrollIntoView so a
// missing selector fails fast instead of waiting out the page deadline.
const scrollIntoViewTimeout = 2 * time.Second

var _ skillet.Page = (*page)(nil)

// page adapts a rod page to skillet.Page. Not safe for concurrent use;
// pages are scoped to one extraction.
type page struct {
	p *rod.Page
}

func (p *page) WaitIdle(ctx context.Context, timeout time.Duration) error {
	pg := p.p.Context(ctx).Timeout(timeout)
	defer pg.CancelTimeout()
	wait := pg.WaitRequestIdle(requestIdleWindow, nil, nil, nil)
	wait()
	return nil
}

func (p *page) WaitSelector(ctx context.Context, selector string, timeout time.Duration) error {
	pg := p.p.Context(ctx).Timeout(timeout)
	defer pg.CancelTimeout()
	_, err := pg.Element(selector)
	return err
}

func (p *page) ScrollBy(ctx context.Context, dx, dy float64) error {
	return p.p.Context(ctx).Mouse.Scroll(dx, dy, 1)
}

func (p *page) ScrollIntoView(ctx context.Context, selector string) (bool, error) {
	pg := p.p.Context(ctx).Timeout(scrollIntoViewTimeout)
	defer pg.CancelTimeout()
	el, err := pg.Element(selector)
	if err != nil {
		return false, nil
	}
	if err := el.ScrollIntoView(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *page) HTML(ctx context.Context) (string, error) {
	return p.p.Context(ctx).HTML()
}

func (p *page) Boxes(ctx context.Context, selector string) ([]skillet.Box, error) {
	els, err := p.p.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}

	boxes := make([]skillet.Box, 0, len(els))
	for _, el := range els {
		shape, err := el.Shape()
		if err != nil || len(shape.Quads) == 0 {
			continue
		}
		box := shape.Box()
		boxes = append(boxes, skillet.Box{
			X:      box.X,
			Y:      box.Y,
			Width:  box.Width,
			Height: box.Height,
		})
	}
	return boxes, nil
}

func (p *page) Screenshot(ctx context.Context, region *skillet.Box) ([]byte, error) {
	req := &proto.PageCaptureScreenshot{Format: proto.PageCaptureScreenshotFormatPng}
	if region != nil {
		req.Clip = &proto.PageViewport{
			X:      region.X,
			Y:      region.Y,
			Width:  region.Width,
			Height: region.Height,
			Scale:  1,
		}
	}
	return p.p.Context(ctx).Screenshot(false, req)
}

func (p *page) Close() error {
	return p.p.Close()
}
