// Package trafilatura implements full-page content extraction used as
// the scraper's fallback when no recipe container selector matches.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/skillet"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ skillet.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML,
// stripping navigation, ads, and comment boilerplate.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*skillet.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, skillet.Errorf(skillet.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &skillet.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
