package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/skillet"
)

// Ensure LoggingRecipeExtractor implements skillet.RecipeExtractor.
var _ skillet.RecipeExtractor = (*LoggingRecipeExtractor)(nil)

// LoggingRecipeExtractor wraps a RecipeExtractor with operation logging.
type LoggingRecipeExtractor struct {
	next   skillet.RecipeExtractor
	logger *slog.Logger
}

// NewLoggingRecipeExtractor creates a new LoggingRecipeExtractor.
func NewLoggingRecipeExtractor(next skillet.RecipeExtractor, logger *slog.Logger) *LoggingRecipeExtractor {
	return &LoggingRecipeExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingRecipeExtractor) Extract(ctx context.Context, cleanedText string, imageURL string) (recipe *skillet.Recipe, err error) {
	defer func(begin time.Time) {
		var title string
		var complete bool
		if recipe != nil {
			title = recipe.Title
			complete = recipe.Complete()
		}
		e.logger.Info("extract recipe",
			"inputChars", len(cleanedText),
			"title", title,
			"complete", complete,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(ctx, cleanedText, imageURL)
}
