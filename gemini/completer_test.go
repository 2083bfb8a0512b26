package gemini_test

import (
	"testing"

	"github.com/fwojciec/skillet"
	"github.com/fwojciec/skillet/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("temperature zero is explicit, not omitted", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(skillet.CompleteOptions{Temperature: 0})
		require.NotNil(t, config.Temperature)
		assert.Zero(t, *config.Temperature)
	})

	t.Run("max tokens forwarded when set", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(skillet.CompleteOptions{MaxTokens: 2048})
		assert.Equal(t, int32(2048), config.MaxOutputTokens)

		config = gemini.BuildConfig(skillet.CompleteOptions{})
		assert.Zero(t, config.MaxOutputTokens)
	})
}
