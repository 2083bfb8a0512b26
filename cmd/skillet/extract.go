package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/skillet"
	"github.com/fwojciec/skillet/fs"
	"github.com/fwojciec/skillet/pipeline"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	opts := pipeline.Options{
		MaxRecipes: c.MaxRecipes,
		Progress: func(p skillet.BatchProgress, r skillet.ExtractionResult) {
			status := "ok"
			if !r.Success {
				status = "fail"
			}
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s %s\n", p.Completed+p.Failed, p.Total, status, r.Metadata.URL)
		},
	}

	result, err := deps.Router.ExtractFromURL(deps.Ctx, c.URL, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", skillet.ErrorMessage(err))
		return err
	}

	if result.Batched() {
		return c.reportBatch(deps, result)
	}
	return c.reportSingle(deps, result.Result)
}

func (c *ExtractCmd) reportBatch(deps *Dependencies, result *pipeline.RouteResult) error {
	s := result.Summary
	fmt.Fprintf(deps.Stdout, "Extracted %d of %d recipes (%s) in %s\n",
		s.SuccessfulExtractions, s.TotalURLs, s.SuccessRate, s.Duration.Round(time.Second))
	for _, r := range result.Results {
		if r.Success {
			fmt.Fprintf(deps.Stdout, "  ok    %s  %s\n", r.Metadata.URL, r.Recipe.Title)
		} else {
			fmt.Fprintf(deps.Stdout, "  fail  %s  %s\n", r.Metadata.URL, r.Error)
		}
	}

	if c.Out != "" {
		if err := fs.WriteResults(c.Out, s, result.Results); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", skillet.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Out)
	}
	return nil
}

func (c *ExtractCmd) reportSingle(deps *Dependencies, result *skillet.ExtractionResult) error {
	if !result.Success {
		fmt.Fprintf(deps.Stderr, "error: %s\n", result.Error)
		return skillet.Errorf(skillet.EUNPARSABLE, "extraction failed: %s", result.Error)
	}

	printRecipe(deps.Stdout, result.Recipe)

	if c.Out != "" {
		if err := fs.WriteResult(c.Out, *result); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", skillet.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Out)
	}
	return nil
}
