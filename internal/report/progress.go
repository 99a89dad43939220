package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/svgencoder/internal/model"
)

// ProgressLabel prefixes every progress line.
const ProgressLabel = "| ENCODED |: "

var (
	firstIndent = "\t" + ProgressLabel
	hangIndent  = "\t" + strings.Repeat(" ", len(ProgressLabel))
)

// Progress prints one line per converted file.
type Progress struct {
	baseWriter

	// width is the total line width, indent included. A tab counts as one column.
	width int
}

// ProgressOption configures a Progress.
type ProgressOption func(*Progress)

// WithWidth sets the line width directly instead of detecting the terminal.
// Widths below MinWrapWidth are raised to it.
func WithWidth(width int) ProgressOption {
	return func(p *Progress) {
		p.width = max(MinWrapWidth, width)
	}
}

// NewProgress creates a Progress writing to output. Without WithWidth the
// width is derived from the terminal attached to stdout.
func NewProgress(output io.Writer, opts ...ProgressOption) *Progress {
	p := &Progress{
		baseWriter: newBaseWriter(output),
		width:      WrapWidth(TerminalColumns()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Record prints the source and destination paths of record, wrapped with a
// hanging indent under the label, followed by a blank line.
func (p *Progress) Record(record *model.ConversionRecord) error {
	msg := fmt.Sprintf("%s -> %s", record.InputPath, strings.Join(record.OutputFiles, ", "))
	_, err := io.WriteString(p.output, p.wrap(msg)+"\n\n")
	return err
}

// wrap fills msg into lines of p.width columns including the indents.
func (p *Progress) wrap(msg string) string {
	return fill(msg, p.width, firstIndent, hangIndent)
}

// Banner prints the start banner.
func Banner(w io.Writer) error {
	_, err := io.WriteString(w, "| SVG_ENCODER |\n\tStarting encoding process...\n\n")
	return err
}

// Summary prints the number of processed files.
// "file" is only pluralized for counts greater than one.
func Summary(w io.Writer, count int) error {
	_, err := fmt.Fprintf(w, "\tEncoded %d file%s \n\n", count, model.Plural(count))
	return err
}

// Aborted prints the notice shown when the user interrupts a run.
func Aborted(w io.Writer) error {
	_, err := io.WriteString(w, "User aborted process...\n")
	return err
}

// Finished prints the final line of a run.
func Finished(w io.Writer) error {
	_, err := io.WriteString(w, "Process finished\n\n")
	return err
}
