// Package log provides the svgencoder logger, built on top of the standard
// slog package.
//
// The PayloadHandler wraps another slog.Handler and shortens attribute values
// that carry encoded file content (base64 text, data URIs). A single SVG can
// produce encodings of many kilobytes; logging them verbatim would bury every
// other line in debug output.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("encoded", "path", p, "base64", b64) // base64 is summarized
//	slog.SetDefault(logger)
package log
