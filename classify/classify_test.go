package classify_test

import (
	"testing"

	"github.com/fwojciec/skillet"
	"github.com/fwojciec/skillet/classify"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		typ    skillet.URLType
		action skillet.Action
	}{
		{"bare domain", "https://example.com", skillet.URLTypeHomepage, skillet.ActionDiscover},
		{"bare domain with slash", "https://example.com/", skillet.URLTypeHomepage, skillet.ActionDiscover},
		{"index page", "https://example.com/index.html", skillet.URLTypeHomepage, skillet.ActionDiscover},
		{"home page", "https://example.com/home", skillet.URLTypeHomepage, skillet.ActionDiscover},
		{"category path", "https://example.com/category/desserts/", skillet.URLTypeCategory, skillet.ActionDiscover},
		{"tag path", "https://example.com/tag/vegan", skillet.URLTypeCategory, skillet.ActionDiscover},
		{"recipes index", "https://example.com/recipes", skillet.URLTypeCategory, skillet.ActionDiscover},
		{"cuisine index", "https://example.com/cuisine/italian/", skillet.URLTypeCategory, skillet.ActionDiscover},
		{"paginated listing", "https://example.com/recipes/page/3", skillet.URLTypeCategory, skillet.ActionDiscover},
		{"recipe path", "https://example.com/recipe/tomato-soup", skillet.URLTypeRecipe, skillet.ActionExtract},
		{"recipe under index", "https://example.com/recipes/tomato-soup", skillet.URLTypeRecipe, skillet.ActionExtract},
		{"dish slug", "https://example.com/grandmas-chocolate-cake", skillet.URLTypeRecipe, skillet.ActionExtract},
		{"soup slug", "https://example.com/posts/creamy-tomato-soup/", skillet.URLTypeRecipe, skillet.ActionExtract},
		{"dated post", "https://example.com/2023/08/weeknight-dinner", skillet.URLTypeRecipe, skillet.ActionExtract},
		{"unknown path", "https://example.com/about-us", skillet.URLTypeUnknown, skillet.ActionExtract},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := classify.Classify(tt.url)

			assert.Equal(t, tt.typ, c.Type, "type for %s", tt.url)
			assert.Equal(t, tt.action, c.Action, "action for %s", tt.url)
			assert.NotEmpty(t, c.Reason)
		})
	}
}

func TestClassify_OrderedPrecedence(t *testing.T) {
	t.Parallel()

	// Category rules win over recipe rules: a dish-name slug under
	// /category/ is still a listing.
	c := classify.Classify("https://example.com/category/chocolate-cake")
	assert.Equal(t, skillet.URLTypeCategory, c.Type)
}

func TestClassify_NeverErrors(t *testing.T) {
	t.Parallel()

	c := classify.Classify("://not a url")

	assert.Equal(t, skillet.URLTypeError, c.Type)
	assert.Equal(t, skillet.ActionExtract, c.Action)
}

func TestIsPopularListing(t *testing.T) {
	t.Parallel()

	assert.True(t, classify.IsPopularListing("https://example.com/popular"))
	assert.True(t, classify.IsPopularListing("https://example.com/best-dinner-recipes/"))
	assert.False(t, classify.IsPopularListing("https://example.com/recipe/cake"))
}
