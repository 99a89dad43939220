package report

import (
	"io"

	"github.com/nao1215/svgencoder/internal/model"
)

// Writer defines the interface for manifest output.
// Implementations describe a finished run in various formats.
type Writer interface {
	// Write outputs the manifest of summary.
	// Returns the number of bytes written and any error encountered.
	Write(summary *model.RunSummary) (int, error)
}

// Format names a manifest format.
type Format string

// Supported manifest formats.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// NewWriter returns the Writer for format. Unknown formats fall back to text.
func NewWriter(format Format, output io.Writer, version string) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, version, WithPrettyPrint())
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	default:
		return NewTextWriter(output)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
