package main

import (
	"context"
	"io"

	"github.com/fwojciec/skillet"
	"github.com/fwojciec/skillet/pdf"
	"github.com/fwojciec/skillet/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Router     *pipeline.Router
	Discoverer skillet.Discoverer
	PDF        *pdf.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log pipeline activity to stderr"`

	Extract  ExtractCmd  `cmd:"" help:"Extract recipes from a URL"`
	Pdf      PdfCmd      `cmd:"" help:"Extract a recipe from a PDF file or URL"`
	Classify ClassifyCmd `cmd:"" help:"Show how a URL would be classified"`
	Discover DiscoverCmd `cmd:"" help:"Preview candidate recipe URLs without extracting"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL         string `arg:"" help:"Recipe, category, or homepage URL"`
	MaxRecipes  int    `short:"n" default:"0" help:"Cap on recipes extracted in batch mode (0 = no cap)"`
	Concurrency int    `short:"c" default:"6" help:"Concurrent page workers in batch mode"`
	Out         string `short:"o" help:"Write results as JSON to this file"`
}

// PdfCmd is the "pdf" subcommand.
type PdfCmd struct {
	Source string `arg:"" help:"Path to a PDF file, or a PDF URL"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	URL string `arg:"" help:"URL to classify"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL string `arg:"" help:"Site or category URL to discover recipes on"`
}
