package encoder

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/svgencoder/internal/model"
)

// Errors returned by Convert. They are wrapped together with the failing path.
var (
	// ErrFileRead is returned when the source file cannot be read.
	ErrFileRead = errors.New("failed to read source file")

	// ErrFileWrite is returned when the output directory or file cannot be written.
	ErrFileWrite = errors.New("failed to write encodings file")
)

// Permissions of created output entries.
const (
	dirPerm  = 0750
	filePerm = 0644
)

// RelativeDir returns the parent directory of filePath relative to inputRoot.
// It returns "." when filePath is not located under inputRoot.
func RelativeDir(filePath, inputRoot string) string {
	parent := filepath.Dir(filePath)
	rel, err := filepath.Rel(inputRoot, parent)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "."
	}
	return rel
}

// Stem returns the base name of path without its final extension.
// A leading dot does not start an extension, so ".svg" is its own stem.
func Stem(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

// OutputPath returns where the encodings of filePath are written.
func OutputPath(filePath, inputRoot, outputRoot string) string {
	return filepath.Join(outputRoot, RelativeDir(filePath, inputRoot), Stem(filePath)+model.EncodingsSuffix)
}

// Converter converts single files and logs their encodings at debug level.
type Converter struct {
	logger *slog.Logger
}

// NewConverter creates a Converter logging to logger.
// A nil logger discards all output.
func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Converter{logger: logger}
}

// Convert encodes filePath with a Converter that does not log.
func Convert(filePath, inputRoot, outputRoot string, overwrite bool) (*model.ConversionRecord, error) {
	return NewConverter(nil).Convert(filePath, inputRoot, outputRoot, overwrite)
}

// Convert encodes filePath and writes the report under outputRoot, mirroring
// the file's directory relative to inputRoot. When the report already exists
// and overwrite is false nothing is written and the record is marked skipped;
// the encoded length is still computed so the record stays consistent.
func (c *Converter) Convert(filePath, inputRoot, outputRoot string, overwrite bool) (*model.ConversionRecord, error) {
	relDir := RelativeDir(filePath, inputRoot)
	outputDir := filepath.Join(outputRoot, relDir)
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileWrite, outputDir, err)
	}

	data, err := os.ReadFile(filePath) //nolint:gosec // Paths come from discovery under the user's input root
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileRead, filePath, err)
	}

	enc := Encode(data)
	c.logger.Debug("encoded file",
		"path", filePath,
		"base64", enc.Base64,
		"datauri", enc.DataURI,
	)

	stem := Stem(filePath)
	target := filepath.Join(outputDir, stem+model.EncodingsSuffix)

	record := &model.ConversionRecord{
		InputPath:     filePath,
		RelativeDir:   relDir,
		Stem:          stem,
		OutputFiles:   []string{target},
		EncodedLength: len(enc.Base64),
		SourceSize:    int64(len(data)),
		SourceDigest:  Digest(data),
	}

	if !overwrite && exists(target) {
		record.Skipped = true
		return record, nil
	}

	if err := os.WriteFile(target, []byte(Format(enc)), filePerm); err != nil { //nolint:gosec // Encodings are meant to be shared
		return nil, fmt.Errorf("%w: %s: %w", ErrFileWrite, target, err)
	}
	return record, nil
}

// exists reports whether path names an existing file system entry.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
