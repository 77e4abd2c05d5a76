// Package fs writes extraction results to files and streams.
package fs

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/carousel"
	"gopkg.in/yaml.v3"
)

// Encode writes r to w in the given format. JSON is indented with four
// spaces and leaves &, < and > unescaped. An empty format means JSON.
func Encode(w io.Writer, format carousel.Format, r *carousel.Result) error {
	switch format {
	case carousel.FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		return enc.Encode(r)
	case carousel.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return carousel.Errorf(carousel.EINVALID, "unsupported output format: %s", format)
	}
}

// OutputPath returns the file in dir that a result extracted from
// inputPath is written to: the input's base name with the extension
// replaced by the format's.
// Example: ("out", "pages/van-gogh.html", json) → out/van-gogh.json
func OutputPath(dir, inputPath string, format carousel.Format) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	ext := ".json"
	if format == carousel.FormatYAML {
		ext = ".yaml"
	}
	return filepath.Join(dir, base+ext)
}

// Ensure Writer implements carousel.ResultWriter at compile time.
var _ carousel.ResultWriter = (*Writer)(nil)

// Writer writes a result to a file. The file is replaced atomically so a
// failed write never leaves a truncated result behind.
type Writer struct {
	path   string
	format carousel.Format
}

// NewWriter creates a new Writer for the file at path.
func NewWriter(path string, format carousel.Format) *Writer {
	return &Writer{path: path, format: format}
}

// WriteResult encodes r to a temporary file next to the target and renames
// it into place.
func (w *Writer) WriteResult(ctx context.Context, r *carousel.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := Encode(tmp, w.format, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), w.path)
}

// Ensure StreamWriter implements carousel.ResultWriter at compile time.
var _ carousel.ResultWriter = (*StreamWriter)(nil)

// StreamWriter writes a result to an io.Writer such as stdout.
type StreamWriter struct {
	w      io.Writer
	format carousel.Format
}

// NewStreamWriter creates a new StreamWriter.
func NewStreamWriter(w io.Writer, format carousel.Format) *StreamWriter {
	return &StreamWriter{w: w, format: format}
}

// WriteResult encodes r to the underlying writer.
func (w *StreamWriter) WriteResult(ctx context.Context, r *carousel.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Encode(w.w, w.format, r)
}
