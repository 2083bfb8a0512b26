// Package gemini implements the text and vision completion capabilities
// using Google Gemini.
package gemini

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/skillet"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// maxImageDownloads caps how many candidate images CompleteWithImageURLs
// fetches and attaches.
const maxImageDownloads = 8

// maxImageBytes caps one downloaded image.
const maxImageBytes = 8 << 20

var _ skillet.TextCompleter = (*Completer)(nil)
var _ skillet.VisionCompleter = (*Completer)(nil)

// Completer implements skillet.TextCompleter and skillet.VisionCompleter
// using Google Gemini.
type Completer struct {
	client *genai.Client
	http   *http.Client
}

// CompleterOption configures a Completer.
type CompleterOption func(*Completer)

// WithHTTPClient sets the client used to download candidate images.
func WithHTTPClient(hc *http.Client) CompleterOption {
	return func(c *Completer) { c.http = hc }
}

// NewCompleter creates a Completer over an initialized genai client.
func NewCompleter(client *genai.Client, opts ...CompleterOption) *Completer {
	c := &Completer{
		client: client,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildConfig translates completion options into a Gemini request config.
func BuildConfig(opts skillet.CompleteOptions) *genai.GenerateContentConfig {
	temp := opts.Temperature
	config := &genai.GenerateContentConfig{Temperature: &temp}
	if opts.MaxTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxTokens)
	}
	return config
}

// Complete sends a text prompt and returns the raw model output.
func (c *Completer) Complete(ctx context.Context, prompt string, opts skillet.CompleteOptions) (string, error) {
	if prompt == "" {
		return "", skillet.Errorf(skillet.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(opts),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", skillet.Errorf(skillet.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// CompleteWithImage sends a prompt with raw image bytes. Temperature 0.
func (c *Completer) CompleteWithImage(ctx context.Context, prompt string, image []byte) (string, error) {
	if len(image) == 0 {
		return "", skillet.Errorf(skillet.EINVALID, "image required")
	}

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{
				{Text: prompt},
				{InlineData: &genai.Blob{
					MIMEType: http.DetectContentType(image),
					Data:     image,
				}},
			},
		}},
		BuildConfig(skillet.CompleteOptions{}),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", skillet.Errorf(skillet.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// CompleteWithImageURLs downloads up to maxImageDownloads candidate
// images and sends them with the prompt. Individual download failures are
// skipped; the call fails only when no image could be fetched.
func (c *Completer) CompleteWithImageURLs(ctx context.Context, prompt string, urls []string) (string, error) {
	if len(urls) == 0 {
		return "", skillet.Errorf(skillet.EINVALID, "image urls required")
	}
	if len(urls) > maxImageDownloads {
		urls = urls[:maxImageDownloads]
	}

	parts := []*genai.Part{{Text: prompt}}
	for _, u := range urls {
		data, err := c.download(ctx, u)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{
			MIMEType: http.DetectContentType(data),
			Data:     data,
		}})
	}
	if len(parts) == 1 {
		return "", skillet.Errorf(skillet.EUNAVAILABLE, "no candidate images could be fetched")
	}

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{Parts: parts}},
		BuildConfig(skillet.CompleteOptions{}),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", skillet.Errorf(skillet.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

func (c *Completer) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, skillet.Errorf(skillet.EUNAVAILABLE, "fetching image %s: status %d", url, resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}
