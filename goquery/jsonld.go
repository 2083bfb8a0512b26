// Package goquery provides the HTML heuristics the scraping pipeline runs
// over rendered page snapshots: JSON-LD recipe extraction, image candidate
// filtering, recipe link discovery, and content probing. Everything here
// is HTML-in/data-out and unit-testable without a browser.
package goquery

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/skillet"
)

// JSONLDRecipe is a raw JSON-LD Recipe node after shape normalization.
type JSONLDRecipe struct {
	Name         string
	Category     string
	Ingredients  []string
	Instructions []string
	Image        string
	PrepTime     string
	CookTime     string
	Yield        string
	Description  string
}

// Complete reports whether the node satisfies the fast-path completeness
// check: name present, ingredients non-empty, instructions non-empty.
func (r *JSONLDRecipe) Complete() bool {
	return r != nil && strings.TrimSpace(r.Name) != "" &&
		len(r.Ingredients) > 0 && len(r.Instructions) > 0
}

// Recipe transforms the node into the domain recipe. JSON-LD ingredients
// are free-form strings and stay in the Plain variant.
func (r *JSONLDRecipe) Recipe() *skillet.Recipe {
	recipe := &skillet.Recipe{
		Title:        strings.TrimSpace(r.Name),
		Category:     strings.TrimSpace(r.Category),
		Instructions: r.Instructions,
		ImageURL:     r.Image,
		Notes:        strings.TrimSpace(r.Description),
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Yield,
	}
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(ing) == "" {
			continue
		}
		recipe.Ingredients = append(recipe.Ingredients, skillet.PlainIngredient(ing))
	}
	return recipe
}

// ExtractJSONLDRecipe scans every <script type="application/ld+json">
// payload in the document, normalizes single-object vs array vs @graph
// shapes, and returns the first node typed Recipe. The bool result is
// false when no Recipe node exists at all; an incomplete node is still
// returned so callers can decide how to fall back.
func ExtractJSONLDRecipe(html string) (*JSONLDRecipe, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}

	var found *JSONLDRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return true // malformed block, keep scanning
		}
		if node := findRecipeNode(payload); node != nil {
			found = parseRecipeNode(node)
			return false
		}
		return true
	})

	return found, found != nil
}

// findRecipeNode walks a decoded JSON-LD payload and returns the first
// object typed Recipe, handling object, array, and @graph shapes.
func findRecipeNode(payload any) map[string]any {
	switch v := payload.(type) {
	case map[string]any:
		if hasType(v, "Recipe") {
			return v
		}
		if graph, ok := v["@graph"].([]any); ok {
			return findRecipeNode(graph)
		}
	case []any:
		for _, item := range v {
			if node := findRecipeNode(item); node != nil {
				return node
			}
		}
	}
	return nil
}

// hasType checks a node's @type, which may be a string or an array.
func hasType(node map[string]any, typ string) bool {
	switch t := node["@type"].(type) {
	case string:
		return strings.EqualFold(t, typ)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, typ) {
				return true
			}
		}
	}
	return false
}

func parseRecipeNode(node map[string]any) *JSONLDRecipe {
	r := &JSONLDRecipe{
		Name:        stringValue(node["name"]),
		Category:    firstString(node["recipeCategory"]),
		Image:       imageURL(node["image"]),
		PrepTime:    stringValue(node["prepTime"]),
		CookTime:    stringValue(node["cookTime"]),
		Yield:       firstString(node["recipeYield"]),
		Description: stringValue(node["description"]),
	}

	if ings, ok := node["recipeIngredient"].([]any); ok {
		for _, ing := range ings {
			if s := stringValue(ing); s != "" {
				r.Ingredients = append(r.Ingredients, strings.TrimSpace(s))
			}
		}
	}

	r.Instructions = parseInstructions(node["recipeInstructions"])
	return r
}

// parseInstructions flattens recipeInstructions, which arrive as a plain
// string, an array of strings, HowToStep objects, or HowToSection groups.
func parseInstructions(v any) []string {
	var steps []string
	switch inst := v.(type) {
	case string:
		if s := strings.TrimSpace(inst); s != "" {
			steps = append(steps, s)
		}
	case []any:
		for _, item := range inst {
			steps = append(steps, parseInstructions(item)...)
		}
	case map[string]any:
		if hasType(inst, "HowToSection") {
			if elems, ok := inst["itemListElement"].([]any); ok {
				for _, item := range elems {
					steps = append(steps, parseInstructions(item)...)
				}
			}
			break
		}
		if s := strings.TrimSpace(stringValue(inst["text"])); s != "" {
			steps = append(steps, s)
		} else if s := strings.TrimSpace(stringValue(inst["name"])); s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}

// imageURL extracts an image URL from a string, array, or ImageObject.
func imageURL(v any) string {
	switch img := v.(type) {
	case string:
		return img
	case []any:
		if len(img) > 0 {
			return imageURL(img[0])
		}
	case map[string]any:
		return stringValue(img["url"])
	}
	return ""
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// firstString returns v as a string, or the first string element when v is
// an array (recipeYield and recipeCategory commonly arrive as arrays).
func firstString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []any:
		if len(s) > 0 {
			return stringValue(s[0])
		}
	case float64:
		// recipeYield is sometimes a bare number.
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}
