package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/skillet"
)

// recipeLinkText matches anchor text that suggests a recipe link.
var recipeLinkText = regexp.MustCompile(`(?i)\b(recipes?|cook(ing)?|popular|trending|dish(es)?|meal(s)?|bak(e|ing)|dinner|breakfast|lunch|dessert)\b`)

// recipeLinkPath matches href paths that look recipe-like.
var recipeLinkPath = regexp.MustCompile(`(?i)/(recipes?|dish|meal)s?(/|$)|-(recipe|cake|soup|salad|bread|pie|stew|curry|pasta|cookies?)(/|$|\?)`)

// navCategoryText matches navigation anchor text that suggests a recipe
// category worth crawling.
var navCategoryText = regexp.MustCompile(`(?i)\b(recipes?|breakfast|brunch|lunch|dinner|dessert|appetizer|side(s)?|main(s)?|drink(s)?|cuisine|categor(y|ies)|vegan|vegetarian)\b`)

// recipeCardSelectors are common container patterns for recipe cards.
// Used as a structural fallback when text and path heuristics find
// nothing.
var recipeCardSelectors = []string{
	".recipe-card a[href]",
	".recipe-teaser a[href]",
	".post-card a[href]",
	"article a[href]",
	".card a[href]",
	".entry a[href]",
}

// RecipeLinks evaluates all anchors in the document against URL-pattern
// and link-text heuristics, with a structural recipe-card fallback, and
// returns resolved same-origin URLs in document order, deduplicated.
func RecipeLinks(html string, baseURL string) ([]string, error) {
	doc, base, err := parse(html, baseURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var links []string
	add := func(resolved string) {
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved := resolveURL(base, href)
		if resolved == "" || !isSameHost(base, resolved) {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if recipeLinkPath.MatchString(resolved) || recipeLinkText.MatchString(text) {
			add(resolved)
		}
	})

	// Structural fallback: recipe card containers on sites whose link text
	// and paths carry no keywords.
	if len(links) == 0 {
		for _, selector := range recipeCardSelectors {
			doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
				href, _ := sel.Attr("href")
				resolved := resolveURL(base, href)
				if resolved == "" || !isSameHost(base, resolved) {
					return
				}
				add(resolved)
			})
			if len(links) > 0 {
				break
			}
		}
	}

	return links, nil
}

// NavigationLinks inspects navigation and menu anchors and returns
// same-origin links whose text suggests a recipe category.
func NavigationLinks(html string, baseURL string) ([]string, error) {
	doc, base, err := parse(html, baseURL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var links []string
	for _, selector := range []string{"nav a[href]", "header a[href]", ".menu a[href]", ".nav a[href]", "[role=navigation] a[href]"} {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			resolved := resolveURL(base, href)
			if resolved == "" || !isSameHost(base, resolved) || seen[resolved] {
				return
			}
			if !navCategoryText.MatchString(strings.TrimSpace(sel.Text())) {
				return
			}
			seen[resolved] = true
			links = append(links, resolved)
		})
	}

	return links, nil
}

// PDFLinks returns resolved URLs of linked PDF documents.
func PDFLinks(html string, baseURL string) []string {
	doc, base, err := parse(html, baseURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		if u, err := url.Parse(resolved); err != nil || !strings.HasSuffix(strings.ToLower(u.Path), ".pdf") {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return links
}

func parse(html, baseURL string) (*goquery.Document, *url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, nil, skillet.Errorf(skillet.EINVALID, "invalid base URL: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, skillet.Errorf(skillet.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, base, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed, is a non-HTTP link
// (javascript:, mailto:), or resolves to the base URL itself.
// Fragments are stripped for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// Exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink filters javascript:, mailto:, tel:, and data: links.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "#"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
