package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/svgencoder/internal/model"
)

// TextWriter outputs human-readable manifests.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the manifest in human-readable format.
func (w *TextWriter) Write(summary *model.RunSummary) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        SVG ENCODER MANIFEST\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Input:     %s\n", summary.Request.InputRoot))
	sb.WriteString(fmt.Sprintf("Output:    %s\n", summary.Request.OutputRoot))
	sb.WriteString(fmt.Sprintf("Recursive: %t\n", summary.Request.Recursive))
	sb.WriteString(fmt.Sprintf("Override:  %t\n", summary.Request.Overwrite))
	sb.WriteString(fmt.Sprintf("Started:   %s\n", summary.StartedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Duration:  %s\n", summary.Duration().Round(time.Millisecond)))
	sb.WriteString(fmt.Sprintf("Status:    %s\n\n", summary.Status()))

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("FILES (%d written, %d skipped)\n", summary.WrittenCount(), summary.SkippedCount()))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if summary.Count() == 0 {
		sb.WriteString("  No SVG files found\n")
	}
	for i := range summary.Records {
		r := &summary.Records[i]
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", r.Status(), r.InputPath))
		sb.WriteString(fmt.Sprintf("    -> %s (%d base64 chars)\n", r.OutputPath(), r.EncodedLength))
	}
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}
