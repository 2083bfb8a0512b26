package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/skillet"
	"github.com/fwojciec/skillet/extract"
	"github.com/fwojciec/skillet/gemini"
	"github.com/fwojciec/skillet/htmltomarkdown"
	skillethttp "github.com/fwojciec/skillet/http"
	"github.com/fwojciec/skillet/normalize"
	"github.com/fwojciec/skillet/pdf"
	"github.com/fwojciec/skillet/pipeline"
	"github.com/fwojciec/skillet/rod"
	"github.com/fwojciec/skillet/scrape"
	skilletslog "github.com/fwojciec/skillet/slog"
	"github.com/fwojciec/skillet/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Browser shared by the scraping commands. Opened lazily by Run()
	// for the commands that need one.
	Browser *rod.Browser
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Browser != nil {
		return m.Browser.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("skillet"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'skillet --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Wire the browser for commands that drive one.
	if cmd == "extract" || cmd == "pdf" || cmd == "discover" {
		browser, err := rod.NewBrowser()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.Browser = browser
		defer m.Close()
	}

	// Wire the Gemini client for commands that call the model.
	var completer *gemini.Completer
	if cmd == "extract" || cmd == "pdf" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		completer = gemini.NewCompleter(client)
	}

	if cmd == "extract" || cmd == "discover" {
		sitemaps := skillethttp.NewSitemapService(nil)
		fetcher := skillethttp.NewFetcher()
		defer fetcher.Close()
		discoverer := skillet.Discoverer(pipeline.NewDiscoverer(sitemaps, m.Browser, fetcher))
		if logger != nil {
			discoverer = skilletslog.NewLoggingDiscoverer(discoverer, logger)
		}
		deps.Discoverer = discoverer
	}

	if cmd == "extract" {
		scraper := skillet.Scraper(scrape.NewScraper(m.Browser,
			scrape.WithConverter(htmltomarkdown.NewConverter()),
			scrape.WithContentExtractor(trafilatura.NewExtractor()),
		))
		extractor := skillet.RecipeExtractor(extract.NewRecipeExtractor(completer))
		if logger != nil {
			scraper = skilletslog.NewLoggingScraper(scraper, logger)
			extractor = skilletslog.NewLoggingRecipeExtractor(extractor, logger)
		}

		orchestrator := pipeline.NewOrchestrator(
			scraper,
			normalize.New(),
			extractor,
			extract.NewImageSelector(completer),
			pipeline.WithConcurrency(cli.Extract.Concurrency),
			pipeline.WithDomainLimiter(pipeline.NewDomainLimiter(1.0)),
		)
		deps.Router = pipeline.NewRouter(deps.Discoverer, orchestrator)
	}

	if cmd == "pdf" {
		deps.PDF = pdf.NewExtractor(m.Browser, completer)
	}

	return kongCtx.Run(deps)
}
