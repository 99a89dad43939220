// Package main provides the entry point for the svgencoder CLI.
//
// svgencoder walks a directory for SVG files and writes, for every file,
// a sibling .encodings.txt report with its Base64 and data URI encodings.
//
// Usage:
//
//	svgencoder <input-dir>
//	svgencoder <input-dir> -o out -r -f
//	svgencoder history
//
// See --help for all available options.
package main

// main is the entry point for svgencoder.
func main() {
	Execute()
}
