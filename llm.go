package skillet

import "context"

// CompleteOptions configure a text completion call.
type CompleteOptions struct {
	// Temperature controls sampling randomness. The pipeline uses 0 for
	// deterministic, schema-shaped output.
	Temperature float32

	// MaxTokens bounds the response length. 0 means the model default.
	MaxTokens int
}

// TextCompleter calls a text completion model. The model is instructed to
// return JSON-shaped text but there is no guarantee the output parses;
// callers own validation and retry.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)
}

// VisionCompleter calls a vision-capable model.
type VisionCompleter interface {
	// CompleteWithImage sends a prompt together with raw image bytes.
	CompleteWithImage(ctx context.Context, prompt string, image []byte) (string, error)

	// CompleteWithImageURLs sends a prompt together with remote images.
	CompleteWithImageURLs(ctx context.Context, prompt string, urls []string) (string, error)
}
