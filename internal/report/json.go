package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/svgencoder/internal/model"
)

// JSONWriter outputs manifests in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// version is the svgencoder version recorded in the manifest.
	version string

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
		version:    version,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Manifest is the JSON document written by JSONWriter.
type Manifest struct {
	// Version is the svgencoder version that produced the run.
	Version string `json:"version"`

	// Status is "completed" or "cancelled".
	Status string `json:"status"`

	// Written is the number of files whose encodings were written.
	Written int `json:"written"`

	// Skipped is the number of files whose existing output was kept.
	Skipped int `json:"skipped"`

	// Run is the full run summary.
	Run *model.RunSummary `json:"run"`
}

// NewManifest wraps summary with version and counters.
func NewManifest(summary *model.RunSummary, version string) *Manifest {
	return &Manifest{
		Version: version,
		Status:  summary.Status(),
		Written: summary.WrittenCount(),
		Skipped: summary.SkippedCount(),
		Run:     summary,
	}
}

// Write outputs the manifest in JSON format.
func (w *JSONWriter) Write(summary *model.RunSummary) (int, error) {
	return w.writeJSON(NewManifest(summary, w.version))
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
