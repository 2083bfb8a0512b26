package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MinImageDimension is the smallest declared width or height (in pixels)
// an image may have and still qualify as a dish photo candidate.
const MinImageDimension = 200

// imageExcludeKeywords disqualify an image by filename or alt text.
var imageExcludeKeywords = []string{
	"logo", "avatar", "advertisement", "banner", "icon", "sprite",
	"badge", "button", "placeholder", "pixel", "tracking", "gravatar",
	"emoji", "spinner", "loading",
}

// ImageCandidates extracts filtered, resolved image URLs from the
// document. The og:image meta value, when present, is returned first;
// the rest follow in document order. Images are rejected when a declared
// dimension is below MinImageDimension or when the source URL or alt text
// contains an exclusion keyword.
func ImageCandidates(html string, baseURL string) []string {
	doc, base, err := parse(html, baseURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var candidates []string
	add := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" || excludedImage(raw, "") {
			return
		}
		resolved := resolveImageURL(base, raw)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		candidates = append(candidates, resolved)
	}

	if og, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		add(og)
	}

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		alt, _ := sel.Attr("alt")
		if excludedImage(src, alt) {
			return
		}
		if tooSmall(sel.AttrOr("width", "")) || tooSmall(sel.AttrOr("height", "")) {
			return
		}
		add(src)
	})

	return candidates
}

// excludedImage checks the source URL and alt text against the exclusion
// keywords.
func excludedImage(src, alt string) bool {
	haystack := strings.ToLower(src + " " + alt)
	for _, kw := range imageExcludeKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// tooSmall reports whether a declared dimension attribute is below the
// minimum. Absent or non-numeric attributes do not disqualify.
func tooSmall(attr string) bool {
	attr = strings.TrimSuffix(strings.TrimSpace(attr), "px")
	if attr == "" {
		return false
	}
	n, err := strconv.Atoi(attr)
	if err != nil {
		return false
	}
	return n < MinImageDimension
}

// resolveImageURL resolves an image src without the self-reference
// filtering applied to anchors.
func resolveImageURL(base *url.URL, src string) string {
	if isNonHTTPLink(src) {
		return ""
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
