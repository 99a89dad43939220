// Package report provides the console output and run manifests of svgencoder.
//
// Console output:
//   - Progress: one wrapped "| ENCODED |:" line per converted file
//   - Banner, Summary, Aborted, Finished: the fixed lines around a run
//
// Manifests describe a finished run (model.RunSummary) in one of three formats:
//   - TextWriter: Human-readable text (default)
//   - JSONWriter: Structured JSON for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for documentation
//
// Writers implement the Writer interface so the command layer can pick one
// without knowing the format.
package report
