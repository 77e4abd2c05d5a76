package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/carousel"
	"github.com/fwojciec/carousel/chromedp"
	"github.com/fwojciec/carousel/goquery"
	"github.com/fwojciec/carousel/rod"
	carslog "github.com/fwojciec/carousel/slog"
	"github.com/fwojciec/carousel/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// NewRenderer starts a browser session. Replaced in tests.
	NewRenderer func(cfg RendererConfig) (carousel.Renderer, error)

	// SQLite database, opened only when a database path is configured.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		NewRenderer: newRenderer,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
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
		kong.Name("carousel"),
		kong.Description("Extract the result carousel list from a saved Google search page"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("please provide the HTML file path")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var extractor carousel.Extractor = goquery.NewExtractor()
	if cli.Verbose {
		extractor = carslog.NewLoggingExtractor(extractor, deps.Logger)
	}
	deps.Extractor = extractor

	cfg := RendererConfig{
		Browser:     cli.Browser,
		BrowserPath: cli.BrowserPath,
		Timeout:     cli.Timeout,
	}
	deps.NewRenderer = func() (carousel.Renderer, error) {
		r, err := m.NewRenderer(cfg)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, err
		}
		if cli.Verbose {
			return carslog.NewLoggingRenderer(r, deps.Logger), nil
		}
		return r, nil
	}

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set CAROUSEL_DB or --db to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Extractions = sqlite.NewExtractionService(m.DB)
	}

	return kongCtx.Run(deps)
}

// RendererConfig selects and configures the browser backend.
type RendererConfig struct {
	Browser     string
	BrowserPath string
	Timeout     time.Duration
}

// newRenderer starts a browser session on the configured backend.
func newRenderer(cfg RendererConfig) (carousel.Renderer, error) {
	switch cfg.Browser {
	case "chromedp":
		opts := []chromedp.Option{chromedp.WithTimeout(cfg.Timeout)}
		if cfg.BrowserPath != "" {
			opts = append(opts, chromedp.WithBrowserPath(cfg.BrowserPath))
		}
		r, err := chromedp.NewRenderer(opts...)
		if err != nil {
			return nil, err
		}
		return r, nil
	case "rod", "":
		opts := []rod.Option{rod.WithTimeout(cfg.Timeout)}
		if cfg.BrowserPath != "" {
			opts = append(opts, rod.WithBrowserPath(cfg.BrowserPath))
		}
		r, err := rod.NewRenderer(opts...)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, carousel.Errorf(carousel.EINVALID, "unsupported browser backend: %s", cfg.Browser)
	}
}
