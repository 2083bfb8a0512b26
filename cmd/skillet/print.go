package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/skillet"
)

// printRecipe writes a recipe to w in a readable plain-text layout.
func printRecipe(w io.Writer, r *skillet.Recipe) {
	fmt.Fprintln(w, r.Title)
	if r.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", r.Category)
	}
	if r.PrepTime != "" {
		fmt.Fprintf(w, "Prep: %s\n", r.PrepTime)
	}
	if r.CookTime != "" {
		fmt.Fprintf(w, "Cook: %s\n", r.CookTime)
	}
	if r.Servings != "" {
		fmt.Fprintf(w, "Servings: %s\n", r.Servings)
	}
	if r.ImageURL != "" {
		fmt.Fprintf(w, "Image: %s\n", r.ImageURL)
	}

	fmt.Fprintln(w, "\nIngredients:")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  - %s\n", ing.Display())
	}

	fmt.Fprintln(w, "\nInstructions:")
	for i, step := range r.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}

	if r.Notes != "" {
		fmt.Fprintf(w, "\nNotes: %s\n", r.Notes)
	}
}
