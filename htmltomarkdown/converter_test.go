package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/skillet"
	"github.com/fwojciec/skillet/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("ingredient lists keep list structure", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>2 cups flour</li><li>1 tsp baking soda</li><li>1 pinch salt</li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- 2 cups flour")
		assert.Contains(t, md, "- 1 tsp baking soda")
		assert.Contains(t, md, "- 1 pinch salt")
	})

	t.Run("instruction steps keep ordering", func(t *testing.T) {
		t.Parallel()

		html := `<ol><li>Preheat the oven.</li><li>Mix the dry ingredients.</li><li>Bake for 30 minutes.</li></ol>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "1. Preheat the oven.")
		assert.Contains(t, md, "2. Mix the dry ingredients.")
		assert.Contains(t, md, "3. Bake for 30 minutes.")
	})

	t.Run("headings survive", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Ingredients</h2><p>flour</p><h2>Instructions</h2><p>bake</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "## Ingredients")
		assert.Contains(t, md, "## Instructions")
	})

	t.Run("ingredient tables convert", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Amount</th><th>Ingredient</th></tr></thead>
<tbody><tr><td>2 cups</td><td>flour</td></tr><tr><td>1 tsp</td><td>salt</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Amount")
		assert.Contains(t, md, "flour")
		assert.Contains(t, md, "|")
	})

	t.Run("empty input rejected", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")
		require.Error(t, err)
		assert.Equal(t, skillet.EINVALID, skillet.ErrorCode(err))
	})
}
