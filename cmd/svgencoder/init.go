package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/svgencoder/internal/config"
)

//go:embed templates/svgencoder.yaml
var configTemplate embed.FS

// templatePath is the path of the config template inside configTemplate.
const templatePath = "templates/svgencoder.yaml"

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new svgencoder configuration file",
		Long: `Initialize creates a new .svgencoder configuration file in the current directory.

The generated file includes:
- Default output directory, recursion and override settings
- The switch for recording runs in the history database
- Comments describing every option

Examples:
  # Create .svgencoder in current directory
  svgencoder init

  # Create config file at a specific path
  svgencoder init -o myconfig.yaml

  # Force overwrite existing file
  svgencoder init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to change the defaults of svgencoder:")
	fmt.Fprintln(out, "  - Output directory")
	fmt.Fprintln(out, "  - Recursive scanning and overwriting of existing reports")
	fmt.Fprintln(out, "  - Recording runs in the history database")

	return nil
}
