package main

import (
	"fmt"

	"github.com/fwojciec/skillet/classify"
)

// Run executes the classify command.
func (c *ClassifyCmd) Run(deps *Dependencies) error {
	result := classify.Classify(c.URL)

	fmt.Fprintf(deps.Stdout, "type:   %s\n", result.Type)
	fmt.Fprintf(deps.Stdout, "action: %s\n", result.Action)
	fmt.Fprintf(deps.Stdout, "reason: %s\n", result.Reason)

	if classify.IsPopularListing(c.URL) {
		fmt.Fprintln(deps.Stdout, "note:   popular-listing pattern, routed through discovery")
	}
	return nil
}
