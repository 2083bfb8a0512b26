package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/skillet/extract"
	"github.com/fwojciec/skillet/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageSelector_SelectMain(t *testing.T) {
	t.Parallel()

	candidates := []string{
		"https://example.com/dish.jpg",
		"https://example.com/kitchen.jpg",
	}

	t.Run("returns exact match", func(t *testing.T) {
		t.Parallel()

		vision := &mock.VisionCompleter{
			CompleteWithImageURLsFn: func(_ context.Context, prompt string, urls []string) (string, error) {
				assert.Contains(t, prompt, "dish.jpg")
				assert.Equal(t, candidates, urls)
				return "https://example.com/dish.jpg", nil
			},
		}

		s := extract.NewImageSelector(vision)
		url, err := s.SelectMain(context.Background(), candidates)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/dish.jpg", url)
	})

	t.Run("tolerates echoed extra text", func(t *testing.T) {
		t.Parallel()

		vision := &mock.VisionCompleter{
			CompleteWithImageURLsFn: func(_ context.Context, _ string, _ []string) (string, error) {
				return "The best image is https://example.com/dish.jpg", nil
			},
		}

		s := extract.NewImageSelector(vision)
		url, err := s.SelectMain(context.Background(), candidates)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/dish.jpg", url)
	})

	t.Run("none sentinel", func(t *testing.T) {
		t.Parallel()

		vision := &mock.VisionCompleter{
			CompleteWithImageURLsFn: func(_ context.Context, _ string, _ []string) (string, error) {
				return "none", nil
			},
		}

		s := extract.NewImageSelector(vision)
		url, err := s.SelectMain(context.Background(), candidates)

		require.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("response outside candidate set", func(t *testing.T) {
		t.Parallel()

		vision := &mock.VisionCompleter{
			CompleteWithImageURLsFn: func(_ context.Context, _ string, _ []string) (string, error) {
				return "https://elsewhere.com/cat.jpg", nil
			},
		}

		s := extract.NewImageSelector(vision)
		url, err := s.SelectMain(context.Background(), candidates)

		require.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		s := extract.NewImageSelector(&mock.VisionCompleter{})
		url, err := s.SelectMain(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("collaborator error degrades to empty", func(t *testing.T) {
		t.Parallel()

		vision := &mock.VisionCompleter{
			CompleteWithImageURLsFn: func(_ context.Context, _ string, _ []string) (string, error) {
				return "", errors.New("vision model down")
			},
		}

		s := extract.NewImageSelector(vision)
		url, err := s.SelectMain(context.Background(), candidates)

		require.NoError(t, err)
		assert.Empty(t, url)
	})
}
