// Package config provides configuration structures and utilities for svgencoder.
// It defines the options of a conversion run, the optional YAML defaults file,
// and the resolution of those options into a model.ConversionRequest.
package config
