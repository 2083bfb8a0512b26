package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/skillet"
)

// Run executes the pdf command.
func (c *PdfCmd) Run(deps *Dependencies) error {
	var recipe *skillet.Recipe
	var err error

	if strings.HasPrefix(c.Source, "http://") || strings.HasPrefix(c.Source, "https://") {
		recipe, err = deps.PDF.Extract(deps.Ctx, c.Source)
	} else {
		data, readErr := os.ReadFile(c.Source)
		if readErr != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot read %s\n", c.Source)
			return fmt.Errorf("failed to read PDF file %q: %w", c.Source, readErr)
		}
		recipe, err = deps.PDF.ExtractBuffer(deps.Ctx, data)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", skillet.ErrorMessage(err))
		return err
	}

	printRecipe(deps.Stdout, recipe)
	return nil
}
