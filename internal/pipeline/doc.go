// Package pipeline runs a conversion: it discovers SVG files, converts them
// one at a time and hands each record to an observer.
//
// Processing is strictly sequential. Cancellation is cooperative: the
// context is checked before each file, so a file that has started is always
// finished, and the run then stops with a partial summary instead of an
// error.
package pipeline
