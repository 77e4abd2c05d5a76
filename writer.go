package carousel

import "context"

// Format identifies an output encoding.
type Format string

// Supported output formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ResultWriter writes an extraction result to its destination.
type ResultWriter interface {
	WriteResult(ctx context.Context, r *Result) error
}
