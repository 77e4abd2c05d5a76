// Package slog provides logging decorators for carousel services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/carousel"
)

// Ensure LoggingRenderer implements carousel.Renderer.
var _ carousel.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging.
type LoggingRenderer struct {
	next   carousel.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next carousel.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render logs the path being rendered and delegates to the wrapped renderer.
func (r *LoggingRenderer) Render(ctx context.Context, path string) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render",
			"path", path,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, path)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() (err error) {
	defer func() {
		r.logger.Debug("close renderer", "err", err)
	}()
	return r.next.Close()
}

// Ensure LoggingExtractor implements carousel.Extractor.
var _ carousel.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   carousel.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next carousel.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the resolved list name and item count.
func (e *LoggingExtractor) Extract(html string) (result *carousel.Result, err error) {
	defer func(begin time.Time) {
		var list string
		var items int
		if result != nil {
			list = result.ListName
			items = len(result.Items)
		}
		attrs := []any{
			"list", list,
			"items", items,
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", carousel.ErrorCode(err), "err", err)
		}
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html)
}
