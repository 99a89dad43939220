package config

// Defaults holds the run options that can be preset in the config file.
// Pointer fields distinguish "not set" from an explicit false.
type Defaults struct {
	// Output is the default output directory.
	Output string `yaml:"output,omitempty"`

	// Recursive is the default for --recursive.
	Recursive *bool `yaml:"recursive,omitempty"`

	// Override is the default for --override.
	Override *bool `yaml:"override,omitempty"`
}

// File represents the structure of the .svgencoder configuration file.
type File struct {
	// Defaults contains the default run options.
	Defaults Defaults `yaml:"defaults,omitempty"`

	// History enables recording runs in the history database.
	History *bool `yaml:"history,omitempty"`

	// HistoryDir overrides the directory of the history database.
	HistoryDir string `yaml:"historyDir,omitempty"`
}
