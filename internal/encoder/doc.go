// Package encoder turns SVG files into their text encodings.
//
// For every input file four encodings are derived from the raw bytes:
//   - RAW BASE64: standard base64 with padding
//   - DATA URI: "data:image/svg+xml;base64," followed by the base64 text
//   - PERCENT-ENCODED BASE64: the base64 text with every non-unreserved byte escaped
//   - DATA URI (PERCENT-ENCODED): the data URI prefix followed by the percent-encoded text
//
// The encodings are written as one labeled report file per input, mirrored
// under the output root at <relative dir>/<stem>.encodings.txt.
package encoder
