// Package model defines the data structures shared by the svgencoder packages.
//
// This package contains the following main types:
//   - ConversionRequest: The resolved, immutable parameters of one run
//   - ConversionRecord: The outcome of converting a single SVG file
//   - RunSummary: All records of a run plus timing and cancellation state
//
// Models live in their own package so that encoder, report, pipeline and
// database can all depend on them without importing each other.
package model
