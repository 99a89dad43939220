package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nao1215/svgencoder/internal/model"
)

const (
	// DefaultOutputDir is the output directory used when none is given,
	// relative to the current working directory.
	DefaultOutputDir = "svg_encoded"

	// AppName is the application name used for XDG directory paths.
	AppName = "svgencoder"

	// outputDirPerm is the permission of a created output root.
	outputDirPerm = 0750
)

// Config holds all configuration options for a conversion run.
// It is populated from built-in defaults, the optional config file and the
// command-line flags, in increasing order of precedence.
type Config struct {
	// InputDir is the directory scanned for SVG files, as given by the user.
	InputDir string

	// OutputDir is the root directory receiving the encodings, as given by the user.
	OutputDir string

	// Recursive enables scanning subdirectories of InputDir.
	Recursive bool

	// Overwrite allows rewriting existing .encodings.txt files.
	Overwrite bool

	// Verbose enables debug logging on stderr.
	Verbose bool

	// ConfigFilePath is the explicit config file path, if any.
	// When empty the default locations are searched.
	ConfigFilePath string

	// History enables recording the run in the history database.
	History bool

	// HistoryDir is the directory holding the history database.
	HistoryDir string

	// ManifestFile is where the run manifest is written. Empty means no manifest
	// unless a manifest format was requested, in which case it goes to stdout.
	ManifestFile string

	// JSONManifest selects the JSON manifest format.
	JSONManifest bool

	// MarkdownManifest selects the Markdown manifest format.
	MarkdownManifest bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		OutputDir:  DefaultOutputDir,
		HistoryDir: XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for svgencoder.
// On Linux: ~/.local/share/svgencoder
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for svgencoder.
// On Linux: ~/.config/svgencoder
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplyFile copies the values of a loaded config file into c.
// It must be called before command-line flags are applied so that flags win.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Defaults.Output != "" {
		c.OutputDir = f.Defaults.Output
	}
	if f.Defaults.Recursive != nil {
		c.Recursive = *f.Defaults.Recursive
	}
	if f.Defaults.Override != nil {
		c.Overwrite = *f.Defaults.Override
	}
	if f.History != nil {
		c.History = *f.History
	}
	if f.HistoryDir != "" {
		c.HistoryDir = f.HistoryDir
	}
}

// WantsManifest reports whether a manifest should be written.
func (c *Config) WantsManifest() bool {
	return c.ManifestFile != "" || c.JSONManifest || c.MarkdownManifest
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return ErrNoInput
	}
	if c.OutputDir == "" {
		return ErrEmptyOutput
	}
	if c.JSONManifest && c.MarkdownManifest {
		return ErrConflictingManifestFormats
	}
	return nil
}

// Resolve turns the configuration into a ConversionRequest.
// The input directory must exist and be a directory; this is checked before
// anything is created. The output directory is then created, including any
// missing parents, if it does not exist yet.
func (c *Config) Resolve() (*model.ConversionRequest, error) {
	inputRoot, err := filepath.Abs(c.InputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, c.InputDir, err)
	}

	info, err := os.Stat(inputRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: the directory '%s' does not exist", ErrInvalidInput, inputRoot)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInput, inputRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: the path '%s' is not a valid directory", ErrInvalidInput, inputRoot)
	}

	outputRoot, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory %s: %w", c.OutputDir, err)
	}
	if err := os.MkdirAll(outputRoot, outputDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputRoot, err)
	}

	return &model.ConversionRequest{
		InputRoot:  inputRoot,
		OutputRoot: outputRoot,
		Recursive:  c.Recursive,
		Overwrite:  c.Overwrite,
	}, nil
}
