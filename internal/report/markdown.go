package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/svgencoder/internal/model"
)

// MarkdownWriter outputs manifests in GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the manifest in Markdown format.
func (w *MarkdownWriter) Write(summary *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeAlert(md, summary)
	w.writeChart(md, summary)
	w.writeFiles(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.RunSummary) {
	md.H1("SVG Encoder Manifest")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Input", "`" + summary.Request.InputRoot + "`"},
			{"Output", "`" + summary.Request.OutputRoot + "`"},
			{"Recursive", strconv.FormatBool(summary.Request.Recursive)},
			{"Override", strconv.FormatBool(summary.Request.Overwrite)},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", summary.Duration().Round(time.Millisecond).String()},
			{"Files", strconv.Itoa(summary.Count())},
		},
	})
	md.PlainText("")
}

// writeAlert writes an alert describing how the run ended.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.RunSummary) {
	switch {
	case summary.Cancelled:
		md.Warningf("Run was cancelled after %d file%s.", summary.Count(), model.Plural(summary.Count()))
	case summary.Count() == 0:
		md.Note("No SVG files were found.")
	case summary.SkippedCount() > 0:
		md.Importantf("%d existing encodings file%s kept. Use --override to rewrite them.",
			summary.SkippedCount(), model.Plural(summary.SkippedCount()))
	default:
		md.Tip("All files were encoded.")
	}
	md.PlainText("")
}

// writeChart writes a mermaid pie chart of written and skipped files.
func (w *MarkdownWriter) writeChart(md *markdown.Markdown, summary *model.RunSummary) {
	if summary.Count() == 0 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Written vs Skipped"),
		piechart.WithShowData(true),
	)
	if n := summary.WrittenCount(); n > 0 {
		chart.LabelAndIntValue("Written", uint64(n)) //nolint:gosec // n is positive
	}
	if n := summary.SkippedCount(); n > 0 {
		chart.LabelAndIntValue("Skipped", uint64(n)) //nolint:gosec // n is positive
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFiles writes one table row per record.
func (w *MarkdownWriter) writeFiles(md *markdown.Markdown, summary *model.RunSummary) {
	md.H2("Files")
	md.PlainText("")

	if summary.Count() == 0 {
		md.PlainText("No files processed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.Records))
	for i := range summary.Records {
		r := &summary.Records[i]
		rows[i] = []string{
			"`" + r.InputPath + "`",
			"`" + r.OutputPath() + "`",
			strconv.Itoa(r.EncodedLength),
			r.Status(),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Source", "Encodings", "Base64 Length", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the manifest footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Manifest generated by svgencoder*")
}
