package extract_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/skillet"
	"github.com/fwojciec/skillet/extract"
	"github.com/fwojciec/skillet/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResponse = `{
	"title": "Tomato Soup",
	"category": "dinner",
	"ingredients": [
		{"item": "tomatoes", "quantity": "4"},
		{"item": "olive oil", "quantity": "2 tbsp"},
		{"item": "salt", "quantity": "to taste"}
	],
	"instructions": ["Chop the tomatoes.", "Simmer for 20 minutes."],
	"notes": "Use ripe tomatoes.",
	"prepTime": "10 min",
	"cookTime": "20 min",
	"servings": "4"
}`

func TestRecipeExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("parses valid response at temperature zero", func(t *testing.T) {
		t.Parallel()

		completer := &mock.TextCompleter{
			CompleteFn: func(_ context.Context, prompt string, opts skillet.CompleteOptions) (string, error) {
				assert.Zero(t, opts.Temperature)
				assert.Contains(t, prompt, "2 cups flour")
				return validResponse, nil
			},
		}

		e := extract.NewRecipeExtractor(completer)
		r, err := e.Extract(context.Background(), "Tomato Soup\n2 cups flour", "https://example.com/soup.jpg")

		require.NoError(t, err)
		assert.Equal(t, "Tomato Soup", r.Title)
		assert.Equal(t, skillet.CategoryDinner, r.Category)
		assert.Equal(t, "https://example.com/soup.jpg", r.ImageURL)
		assert.Len(t, completer.Prompts, 1)

		// Quantities parse into the tagged union.
		require.Len(t, r.Ingredients, 3)
		assert.Equal(t, skillet.IngredientStructured, r.Ingredients[0].Kind)
		assert.Equal(t, "4", r.Ingredients[0].Quantity)
		assert.Equal(t, "tablespoon", r.Ingredients[1].Unit)
		assert.Equal(t, skillet.IngredientPlain, r.Ingredients[2].Kind)

		assert.True(t, r.Complete())
	})

	t.Run("tolerates markdown fences", func(t *testing.T) {
		t.Parallel()

		completer := &mock.TextCompleter{
			CompleteFn: func(_ context.Context, _ string, _ skillet.CompleteOptions) (string, error) {
				return "```json\n" + validResponse + "\n```", nil
			},
		}

		e := extract.NewRecipeExtractor(completer)
		r, err := e.Extract(context.Background(), "some text", "")

		require.NoError(t, err)
		assert.Equal(t, "Tomato Soup", r.Title)
	})

	t.Run("one corrective retry on parse failure", func(t *testing.T) {
		t.Parallel()

		calls := 0
		completer := &mock.TextCompleter{
			CompleteFn: func(_ context.Context, _ string, _ skillet.CompleteOptions) (string, error) {
				calls++
				if calls == 1 {
					return `{"title": "Tomato Soup", INVALID`, nil
				}
				return validResponse, nil
			},
		}

		e := extract.NewRecipeExtractor(completer)
		r, err := e.Extract(context.Background(), "some text", "")

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, "Tomato Soup", r.Title)

		// The re-prompt embeds the invalid output.
		require.Len(t, completer.Prompts, 2)
		assert.Contains(t, completer.Prompts[1], "INVALID")
	})

	t.Run("degrades to flagged fallback after second parse failure", func(t *testing.T) {
		t.Parallel()

		completer := &mock.TextCompleter{
			CompleteFn: func(_ context.Context, _ string, _ skillet.CompleteOptions) (string, error) {
				return "not json at all", nil
			},
		}

		e := extract.NewRecipeExtractor(completer)
		r, err := e.Extract(context.Background(), strings.Repeat("long source text ", 100), "")

		require.NoError(t, err)
		assert.Len(t, completer.Prompts, 2)
		assert.Equal(t, skillet.FallbackTitle, r.Title)
		assert.False(t, r.Complete())
		require.Len(t, r.Instructions, 1)
		assert.Contains(t, r.Instructions[0], "long source text")
		assert.LessOrEqual(t, len(r.Instructions[0]), 600)
	})

	t.Run("collaborator errors propagate", func(t *testing.T) {
		t.Parallel()

		completer := &mock.TextCompleter{
			CompleteFn: func(_ context.Context, _ string, _ skillet.CompleteOptions) (string, error) {
				return "", errors.New("model unavailable")
			},
		}

		e := extract.NewRecipeExtractor(completer)
		_, err := e.Extract(context.Background(), "some text", "")

		assert.Error(t, err)
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		e := extract.NewRecipeExtractor(&mock.TextCompleter{})
		_, err := e.Extract(context.Background(), "  ", "")

		assert.Equal(t, skillet.EINVALID, skillet.ErrorCode(err))
	})

	t.Run("unknown category normalized to other", func(t *testing.T) {
		t.Parallel()

		completer := &mock.TextCompleter{
			CompleteFn: func(_ context.Context, _ string, _ skillet.CompleteOptions) (string, error) {
				return `{"title": "X", "category": "brunch-ish", "ingredients": [{"item": "x", "quantity": "1"}], "instructions": ["y"]}`, nil
			},
		}

		e := extract.NewRecipeExtractor(completer)
		r, err := e.Extract(context.Background(), "text", "")

		require.NoError(t, err)
		assert.Equal(t, skillet.CategoryOther, r.Category)
	})
}
