package mock

import (
	"context"

	"github.com/fwojciec/skillet"
)

var _ skillet.TextCompleter = (*TextCompleter)(nil)

// TextCompleter is a mock implementation of skillet.TextCompleter.
type TextCompleter struct {
	CompleteFn func(ctx context.Context, prompt string, opts skillet.CompleteOptions) (string, error)

	// Prompts records every prompt received, in order, so tests can
	// assert on retry behavior.
	Prompts []string
}

func (c *TextCompleter) Complete(ctx context.Context, prompt string, opts skillet.CompleteOptions) (string, error) {
	c.Prompts = append(c.Prompts, prompt)
	return c.CompleteFn(ctx, prompt, opts)
}

var _ skillet.VisionCompleter = (*VisionCompleter)(nil)

// VisionCompleter is a mock implementation of skillet.VisionCompleter.
type VisionCompleter struct {
	CompleteWithImageFn     func(ctx context.Context, prompt string, image []byte) (string, error)
	CompleteWithImageURLsFn func(ctx context.Context, prompt string, urls []string) (string, error)
}

func (c *VisionCompleter) CompleteWithImage(ctx context.Context, prompt string, image []byte) (string, error) {
	return c.CompleteWithImageFn(ctx, prompt, image)
}

func (c *VisionCompleter) CompleteWithImageURLs(ctx context.Context, prompt string, urls []string) (string, error) {
	return c.CompleteWithImageURLsFn(ctx, prompt, urls)
}
