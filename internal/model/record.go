package model

// EncodingsSuffix is appended to the stem of every input file to name its output.
const EncodingsSuffix = ".encodings.txt"

// ConversionRecord describes the result of converting a single input file.
// A record is produced once per discovered file and never modified afterwards.
type ConversionRecord struct {
	// InputPath is the absolute path of the source SVG file.
	InputPath string `json:"inputPath"`

	// RelativeDir is the parent directory of InputPath relative to the input root.
	// It is "." when the file is not a descendant of the input root.
	RelativeDir string `json:"relativeDir"`

	// Stem is the file name without its extension.
	Stem string `json:"stem"`

	// OutputFiles lists the paths written, or the pre-existing path when skipped.
	// It always holds exactly one entry.
	OutputFiles []string `json:"outputFiles"`

	// EncodedLength is the length of the raw base64 text.
	EncodedLength int `json:"encodedLength"`

	// Skipped is true when an existing output was kept because overwriting was not requested.
	Skipped bool `json:"skipped"`

	// SourceSize is the size of the source file in bytes.
	SourceSize int64 `json:"sourceSize"`

	// SourceDigest is the hex SHA3-256 digest of the source bytes.
	SourceDigest string `json:"sourceDigest,omitempty"`
}

// OutputPath returns the single output path of the record, or "" if none is set.
func (r *ConversionRecord) OutputPath() string {
	if len(r.OutputFiles) == 0 {
		return ""
	}
	return r.OutputFiles[0]
}

// Status returns "written" or "skipped".
func (r *ConversionRecord) Status() string {
	if r.Skipped {
		return StatusSkipped
	}
	return StatusWritten
}

// Record status values.
const (
	StatusWritten = "written"
	StatusSkipped = "skipped"
)
