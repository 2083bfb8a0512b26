package skillet

import (
	"context"
	"strings"
)

// Recipe categories returned by structured extraction. Free-form category
// strings from scraped data are preserved as-is; these constants are the
// enum offered to the extraction model.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategoryDessert   = "dessert"
	CategorySnack     = "snack"
	CategoryDrink     = "drink"
	CategoryOther     = "other"
)

// FallbackTitle is the title assigned to recipes the extraction service
// could not structure. Recipes carrying it never pass Complete.
const FallbackTitle = "Recipe (manual review needed)"

// Recipe represents an extracted recipe.
type Recipe struct {
	Title        string       `json:"title"`
	Category     string       `json:"category"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"` // ordered
	ImageURL     string       `json:"imageUrl,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	PrepTime     string       `json:"prepTime,omitempty"`
	CookTime     string       `json:"cookTime,omitempty"`
	Servings     string       `json:"servings,omitempty"`
}

// placeholderTitles are titles that indicate the extraction produced no
// usable recipe name.
var placeholderTitles = []string{
	"",
	"untitled",
	"untitled recipe",
	"unknown",
	"recipe",
	strings.ToLower(FallbackTitle),
}

// Complete reports whether the recipe passes the acceptance invariant:
// a non-placeholder title, at least one ingredient, and at least one
// instruction. Incomplete recipes must be reported as failures with an
// explicit reason, never silently dropped.
func (r *Recipe) Complete() bool {
	if r == nil {
		return false
	}
	title := strings.ToLower(strings.TrimSpace(r.Title))
	for _, p := range placeholderTitles {
		if title == p {
			return false
		}
	}
	return len(r.Ingredients) > 0 && len(r.Instructions) > 0
}

// Validate returns an error if the recipe fails the acceptance invariant.
func (r *Recipe) Validate() error {
	if r == nil {
		return Errorf(EINVALID, "recipe required")
	}
	if !r.Complete() {
		return Errorf(EINVALID, "missing essential content")
	}
	return nil
}

// RecipeExtractor structures cleaned page text into a Recipe using a text
// completion model. Implementations never fail on malformed model output;
// after one corrective retry they degrade to a fallback recipe flagged
// with FallbackTitle.
type RecipeExtractor interface {
	Extract(ctx context.Context, cleanedText string, imageURL string) (*Recipe, error)
}

// ImageSelector picks the best representative image from candidate URLs
// using a vision-capable model. It returns "" (and no error) when the
// input is empty, no candidate qualifies, or the collaborator fails.
type ImageSelector interface {
	SelectMain(ctx context.Context, imageURLs []string) (string, error)
}

// Normalizer cleans raw page text before structured extraction.
type Normalizer interface {
	Clean(text string) string
}
