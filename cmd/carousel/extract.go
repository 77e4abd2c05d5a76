package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/carousel"
	"github.com/fwojciec/carousel/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	result, err := extractFile(deps.Ctx, deps, c.Input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", carousel.ErrorMessage(err))
		return err
	}

	var w carousel.ResultWriter = fs.NewStreamWriter(deps.Stdout, carousel.Format(c.Format))
	if c.Output != "" {
		w = fs.NewWriter(c.Output, carousel.Format(c.Format))
	}
	if err := w.WriteResult(deps.Ctx, result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if c.Output != "" {
		fmt.Fprintf(deps.Stderr, "Wrote %d items from %q to %s\n", len(result.Items), result.ListName, c.Output)
	}
	return nil
}

// extractFile renders the saved page at path in a fresh browser session,
// extracts its carousel and records the run when a database is configured.
// The session is closed on every path, including failures.
func extractFile(ctx context.Context, deps *Dependencies, path string) (*carousel.Result, error) {
	renderer, err := deps.NewRenderer()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			deps.Logger.Warn("close renderer", "path", path, "err", err)
		}
	}()

	markup, err := renderer.Render(ctx, path)
	if err != nil {
		return nil, err
	}

	result, err := deps.Extractor.Extract(markup)
	if err != nil {
		return nil, err
	}

	if deps.Extractions != nil {
		source, err := filepath.Abs(path)
		if err != nil {
			source = path
		}
		ext := &carousel.Extraction{
			SourcePath: source,
			Result:     result,
			Markup:     markup,
		}
		if err := deps.Extractions.CreateExtraction(ctx, ext); err != nil {
			return nil, fmt.Errorf("failed to record extraction: %w", err)
		}
		deps.Logger.Debug("recorded extraction", "id", ext.ID, "path", source)
	}

	return result, nil
}
