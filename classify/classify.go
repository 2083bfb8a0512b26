// Package classify categorizes recipe site URLs by pattern heuristics.
// Classification is pure and deterministic: the rule tables are ordered,
// exported, and unit-testable without any scraping I/O.
package classify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/skillet"
)

// Rule maps a URL pattern to a classification. Tables are evaluated in
// order; the first matching rule wins.
type Rule struct {
	Pattern *regexp.Regexp
	Reason  string
}

// HomepageRules match bare domains and homepage-ish paths.
// Checked first.
var HomepageRules = []Rule{
	{regexp.MustCompile(`^/?$`), "bare domain"},
	{regexp.MustCompile(`^/(index|home)(\.\w+)?/?$`), "homepage path"},
}

// CategoryRules match category/listing/index pages.
// Checked second.
var CategoryRules = []Rule{
	{regexp.MustCompile(`/(category|categories)/`), "category path"},
	{regexp.MustCompile(`/(tag|tags)/`), "tag path"},
	{regexp.MustCompile(`/(recipes|recipe-index|recipe_index)/?$`), "recipe index"},
	{regexp.MustCompile(`/(cuisine|cuisines)/`), "cuisine index"},
	{regexp.MustCompile(`/(course|courses|meal-type)/`), "course index"},
	{regexp.MustCompile(`/(diet|dietary|vegan-recipes|vegetarian-recipes|gluten-free-recipes)/?($|/)`), "diet index"},
	{regexp.MustCompile(`/(collection|collections|roundup|roundups)/`), "collection page"},
	{regexp.MustCompile(`/page/\d+`), "paginated listing"},
}

// RecipeRules match URLs that look like a single recipe page.
// Checked third.
var RecipeRules = []Rule{
	{regexp.MustCompile(`/recipe/`), "recipe path"},
	{regexp.MustCompile(`/recipes/[^/]+/?$`), "recipe under index"},
	{regexp.MustCompile(`-(recipe|cake|soup|salad|bread|pie|stew|curry|pasta|cookies?|tart|casserole|chili|sauce|smoothie|muffins?)/?$`), "dish-name slug"},
	{regexp.MustCompile(`/\d{4}/\d{2}/[^/]+/?$`), "dated post slug"},
}

// PopularListingRules match listing pages that classify as extract by the
// tables above but are known to link many recipes ("popular", "best of").
// The router consults these as a discovery override.
var PopularListingRules = []Rule{
	{regexp.MustCompile(`/(popular|trending|favorites|favourites)(-recipes)?/?$`), "popular listing"},
	{regexp.MustCompile(`/(best|top)-[^/]*recipes[^/]*/?$`), "best-of listing"},
}

// Classify categorizes a URL and recommends the next action. It never
// returns an error: unparsable input degrades to {error, extract} because
// attempting extraction is always safer than refusing.
func Classify(rawURL string) skillet.Classification {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return skillet.Classification{
			Type:   skillet.URLTypeError,
			Action: skillet.ActionExtract,
			Reason: "unparsable URL",
		}
	}

	path := strings.ToLower(u.Path)

	if rule, ok := match(HomepageRules, path); ok {
		return skillet.Classification{
			Type:   skillet.URLTypeHomepage,
			Action: skillet.ActionDiscover,
			Reason: rule.Reason,
		}
	}

	if rule, ok := match(CategoryRules, path); ok {
		return skillet.Classification{
			Type:   skillet.URLTypeCategory,
			Action: skillet.ActionDiscover,
			Reason: rule.Reason,
		}
	}

	if rule, ok := match(RecipeRules, path); ok {
		return skillet.Classification{
			Type:   skillet.URLTypeRecipe,
			Action: skillet.ActionExtract,
			Reason: rule.Reason,
		}
	}

	return skillet.Classification{
		Type:   skillet.URLTypeUnknown,
		Action: skillet.ActionExtract,
		Reason: "no pattern matched",
	}
}

// IsPopularListing reports whether the URL matches a known popular-listing
// pattern that should be routed through discovery even when classified as
// extract.
func IsPopularListing(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	_, ok := match(PopularListingRules, strings.ToLower(u.Path))
	return ok
}

func match(rules []Rule, path string) (Rule, bool) {
	for _, r := range rules {
		if r.Pattern.MatchString(path) {
			return r, true
		}
	}
	return Rule{}, false
}
