package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ContainerSelectors is the priority list of selectors tried when locating
// the most recipe-likely content container. The first match with enough
// text wins; full body text is the last resort.
var ContainerSelectors = []string{
	`[itemtype*="Recipe"]`,
	".wprm-recipe-container",
	".tasty-recipes",
	".mv-create-wrapper",
	".recipe-content",
	".recipe-card",
	".recipe",
	"article",
	"main",
	"#content",
}

// IngredientSelectors locate a best-guess ingredients container for
// scroll targeting during smart content loading.
var IngredientSelectors = []string{
	".wprm-recipe-ingredients",
	".tasty-recipes-ingredients",
	".recipe-ingredients",
	".ingredients",
	`[class*="ingredient"]`,
	`[id*="ingredient"]`,
}

// InstructionSelectors locate a best-guess instructions container.
var InstructionSelectors = []string{
	".wprm-recipe-instructions",
	".tasty-recipes-instructions",
	".recipe-instructions",
	".instructions",
	".directions",
	`[class*="instruction"]`,
	`[id*="direction"]`,
}

// minContainerText is the minimum text length for a container to be
// considered the recipe content.
const minContainerText = 100

// ingredientUnitKeywords signal that ingredient content has rendered.
var ingredientUnitKeywords = regexp.MustCompile(`(?i)\b(cups?|tablespoons?|tbsp|teaspoons?|tsp|grams?|ounces?|oz|pounds?|lbs?|ml|liters?|cloves?|pinch)\b`)

// stepKeywords signal instruction content.
var stepKeywords = regexp.MustCompile(`(?i)\b(preheat|stir|whisk|bake|simmer|saute|sauté|mix|combine|fold|knead|boil|roast|grill|season|chop|dice|slice|pour|heat)\b`)

// ContentStats is a snapshot of how much recipe-like content a page shows.
type ContentStats struct {
	Chars              int
	IngredientKeywords int
	StepKeywords       int
}

// UnderLoaded reports whether the page still looks like its recipe content
// has not rendered, in which case the scraper waits a little longer.
func (s ContentStats) UnderLoaded() bool {
	return s.Chars < 500 || s.IngredientKeywords == 0 || s.StepKeywords == 0
}

// Stats takes a content snapshot of the document's visible text.
func Stats(html string) ContentStats {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ContentStats{}
	}
	text := doc.Find("body").Text()
	return ContentStats{
		Chars:              len(text),
		IngredientKeywords: len(ingredientUnitKeywords.FindAllString(text, -1)),
		StepKeywords:       len(stepKeywords.FindAllString(text, -1)),
	}
}

// HasIngredientKeywords reports whether visible text contains ingredient
// unit vocabulary.
func HasIngredientKeywords(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	return ingredientUnitKeywords.MatchString(doc.Find("body").Text())
}

// HasRecipeContainer reports whether any container selector matches with
// enough text to qualify as the recipe container.
func HasRecipeContainer(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	for _, selector := range ContainerSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if len(strings.TrimSpace(sel.Text())) >= minContainerText {
			return true
		}
	}
	return false
}

// RecipeContainerHTML returns the inner HTML of the most recipe-likely
// container, trying ContainerSelectors in priority order and falling back
// to the full body when nothing qualifies.
func RecipeContainerHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	for _, selector := range ContainerSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if len(strings.TrimSpace(sel.Text())) < minContainerText {
			continue
		}
		if inner, err := sel.Html(); err == nil {
			return inner
		}
	}

	if body, err := doc.Find("body").Html(); err == nil {
		return body
	}
	return ""
}

// RecipeContainerText returns the plain text of the most recipe-likely
// container, whitespace-trimmed, falling back to full body text.
func RecipeContainerText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	for _, selector := range ContainerSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(sel.Text())
		if len(text) >= minContainerText {
			return text
		}
	}

	return strings.TrimSpace(doc.Find("body").Text())
}
