package model

// ConversionRequest holds the resolved parameters of a conversion run.
// It is created once from the parsed configuration and never mutated.
type ConversionRequest struct {
	// InputRoot is the absolute path of the directory scanned for SVG files.
	InputRoot string `json:"inputRoot"`

	// OutputRoot is the absolute path of the directory receiving the encodings.
	OutputRoot string `json:"outputRoot"`

	// Recursive enables discovery at any depth below InputRoot.
	Recursive bool `json:"recursive"`

	// Overwrite allows existing .encodings.txt files to be rewritten.
	Overwrite bool `json:"overwrite"`
}
