package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/carousel"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// NewRenderer acquires a browser session for a single extraction.
	// The caller owns the returned Renderer and must close it.
	NewRenderer func() (carousel.Renderer, error)
	Extractor   carousel.Extractor

	// Extractions is nil unless a database is configured.
	Extractions carousel.ExtractionService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose     bool          `short:"v" help:"Log rendering and extraction to stderr"`
	Browser     string        `enum:"rod,chromedp" default:"rod" env:"CAROUSEL_BROWSER" help:"Browser automation backend (rod, chromedp)"`
	BrowserPath string        `name:"browser-path" env:"CAROUSEL_BROWSER_PATH" help:"Chrome or Chromium binary to use"`
	Timeout     time.Duration `short:"t" default:"20s" help:"Maximum wait for a page to finish loading"`
	DB          string        `name:"db" env:"CAROUSEL_DB" help:"Record extraction runs in this SQLite database"`

	Extract ExtractCmd `cmd:"" default:"withargs" help:"Extract the carousel list from a saved search page (default). Use 'carousel extract <path>' when the file is named like a command."`
	Batch   BatchCmd   `cmd:"" help:"Extract carousel lists from many saved search pages"`
	History HistoryCmd `cmd:"" help:"List recorded extraction runs"`
	Show    ShowCmd    `cmd:"" help:"Print a recorded extraction result"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a recorded extraction run"`
}

// ExtractCmd is the default "extract" subcommand.
type ExtractCmd struct {
	Input  string `arg:"" help:"Saved search results HTML file"`
	Output string `arg:"" optional:"" help:"Write the result to this file instead of stdout"`
	Format string `short:"f" enum:"json,yaml" default:"json" help:"Output format (json, yaml)"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Inputs      []string `arg:"" help:"Saved search results HTML files"`
	OutDir      string   `short:"o" name:"out-dir" required:"" help:"Directory to write one result file per input"`
	Format      string   `short:"f" enum:"json,yaml" default:"json" help:"Output format (json, yaml)"`
	Concurrency int      `short:"c" default:"2" help:"Number of browser sessions to run at once"`
	Rate        float64  `default:"0" help:"Maximum browser sessions started per second (0 for no limit)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	List  string `short:"l" help:"Only show runs for this list name"`
	Limit int    `short:"n" default:"20" help:"Maximum number of runs to show"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Extraction ID"`
	Format string `short:"f" enum:"json,yaml" default:"json" help:"Output format (json, yaml)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Extraction ID"`
}
