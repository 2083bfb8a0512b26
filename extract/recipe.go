// Package extract structures cleaned page text into recipes with a text
// completion model, and selects representative images with a vision model.
// The services own validation and retry around the model calls; prompt
// strategy for the models themselves is out of scope.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/skillet"
)

// maxExcerptLen bounds the raw-input excerpt embedded in a fallback
// recipe's instructions.
const maxExcerptLen = 500

// maxPromptLen bounds the cleaned text sent to the model.
const maxPromptLen = 12000

// Ensure RecipeExtractor implements skillet.RecipeExtractor.
var _ skillet.RecipeExtractor = (*RecipeExtractor)(nil)

// RecipeExtractor structures cleaned text via a text completion model.
// It is safe for concurrent use; all per-call state is local.
type RecipeExtractor struct {
	completer skillet.TextCompleter
	maxTokens int
}

// ExtractorOption configures a RecipeExtractor.
type ExtractorOption func(*RecipeExtractor)

// WithMaxTokens bounds the model response length. 0 means model default.
func WithMaxTokens(n int) ExtractorOption {
	return func(e *RecipeExtractor) {
		e.maxTokens = n
	}
}

// NewRecipeExtractor creates a new RecipeExtractor.
func NewRecipeExtractor(completer skillet.TextCompleter, opts ...ExtractorOption) *RecipeExtractor {
	e := &RecipeExtractor{completer: completer}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// recipeSchema is the wire shape the model is instructed to return.
type recipeSchema struct {
	Title        string `json:"title"`
	Category     string `json:"category"`
	Ingredients  []struct {
		Item     string `json:"item"`
		Quantity string `json:"quantity"`
	} `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Notes        string   `json:"notes"`
	PrepTime     string   `json:"prepTime"`
	CookTime     string   `json:"cookTime"`
	Servings     string   `json:"servings"`
}

// Extract sends a strict JSON-schema prompt at temperature 0 and parses
// the response. On parse failure it issues exactly one corrective
// re-prompt containing the invalid output; if that also fails it returns
// a flagged fallback recipe rather than an error, so malformed model
// output is never fatal. Only collaborator transport errors propagate.
func (e *RecipeExtractor) Extract(ctx context.Context, cleanedText string, imageURL string) (*skillet.Recipe, error) {
	if strings.TrimSpace(cleanedText) == "" {
		return nil, skillet.Errorf(skillet.EINVALID, "no text content to extract from")
	}
	if len(cleanedText) > maxPromptLen {
		cleanedText = cleanedText[:maxPromptLen]
	}

	opts := skillet.CompleteOptions{Temperature: 0, MaxTokens: e.maxTokens}

	raw, err := e.completer.Complete(ctx, buildExtractionPrompt(cleanedText), opts)
	if err != nil {
		return nil, err
	}

	parsed, parseErr := parseResponse(raw)
	if parseErr != nil {
		// One corrective re-prompt embedding the invalid output.
		raw, err = e.completer.Complete(ctx, buildRepairPrompt(raw), opts)
		if err != nil {
			return nil, err
		}
		parsed, parseErr = parseResponse(raw)
	}
	if parseErr != nil {
		return fallbackRecipe(cleanedText, imageURL), nil
	}

	return parsed.recipe(imageURL), nil
}

// recipe converts the wire shape into the domain recipe, promoting
// ingredient amounts into the tagged union.
func (s *recipeSchema) recipe(imageURL string) *skillet.Recipe {
	r := &skillet.Recipe{
		Title:        strings.TrimSpace(s.Title),
		Category:     normalizeCategory(s.Category),
		Instructions: s.Instructions,
		ImageURL:     imageURL,
		Notes:        strings.TrimSpace(s.Notes),
		PrepTime:     strings.TrimSpace(s.PrepTime),
		CookTime:     strings.TrimSpace(s.CookTime),
		Servings:     strings.TrimSpace(s.Servings),
	}
	for _, ing := range s.Ingredients {
		if strings.TrimSpace(ing.Item) == "" && strings.TrimSpace(ing.Quantity) == "" {
			continue
		}
		r.Ingredients = append(r.Ingredients, skillet.ParseIngredient(ing.Item, ing.Quantity))
	}
	return r
}

// parseResponse parses model output as JSON, tolerating markdown fences.
func parseResponse(raw string) (*recipeSchema, error) {
	cleaned := stripFences(raw)
	var s recipeSchema
	if err := json.Unmarshal([]byte(cleaned), &s); err != nil {
		return nil, skillet.Errorf(skillet.EUNPARSABLE, "model output is not valid JSON: %v", err)
	}
	return &s, nil
}

// stripFences removes a ```json ... ``` wrapper, which models add despite
// instructions not to.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// validCategories is the category enum offered to the model.
var validCategories = map[string]bool{
	skillet.CategoryBreakfast: true,
	skillet.CategoryLunch:     true,
	skillet.CategoryDinner:    true,
	skillet.CategoryDessert:   true,
	skillet.CategorySnack:     true,
	skillet.CategoryDrink:     true,
	skillet.CategoryOther:     true,
}

func normalizeCategory(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if validCategories[c] {
		return c
	}
	return skillet.CategoryOther
}

// fallbackRecipe is returned after both parse attempts fail. The title
// flags the result for manual review and the instructions carry a
// truncated excerpt of the source text so nothing is silently lost.
func fallbackRecipe(cleanedText, imageURL string) *skillet.Recipe {
	excerpt := cleanedText
	if len(excerpt) > maxExcerptLen {
		excerpt = excerpt[:maxExcerptLen] + "…"
	}
	return &skillet.Recipe{
		Title:    skillet.FallbackTitle,
		Category: skillet.CategoryOther,
		ImageURL: imageURL,
		Notes:    "The extraction model returned output that could not be parsed.",
		Instructions: []string{
			fmt.Sprintf("Source text excerpt: %s", excerpt),
		},
	}
}
