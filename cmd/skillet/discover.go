package main

import (
	"fmt"

	"github.com/fwojciec/skillet"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	candidates, err := deps.Discoverer.Discover(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", skillet.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Found %d candidate recipe URLs\n", len(candidates))
	for _, cand := range candidates {
		fmt.Fprintf(deps.Stdout, "  %-10s  %s\n", cand.Method, cand.URL)
	}
	return nil
}
