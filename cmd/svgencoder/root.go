package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/svgencoder/internal/config"
	"github.com/nao1215/svgencoder/internal/database"
	svglog "github.com/nao1215/svgencoder/internal/log"
	"github.com/nao1215/svgencoder/internal/model"
	"github.com/nao1215/svgencoder/internal/pipeline"
	"github.com/nao1215/svgencoder/internal/report"
)

// NewRootCmd creates the root command for svgencoder.
// The root command itself performs the conversion of a directory.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svgencoder <input-dir>",
		Short: "Encode SVG files as Base64 and data URIs",
		Long: `svgencoder scans a directory for .svg files and writes, for each one,
an .encodings.txt report into the output directory. The report holds the
Base64 encoding, the data URI, and percent-encoded forms of both.

The directory layout below the input directory is mirrored in the output
directory. Existing reports are left alone unless --override is given.

Examples:
  # Encode every SVG directly inside ./icons into ./svg_encoded
  svgencoder ./icons

  # Walk subdirectories and write into ./build/encoded
  svgencoder ./icons -r -o ./build/encoded

  # Rewrite existing reports and keep a JSON manifest of the run
  svgencoder ./icons -f --json --manifest run.json`,
		Args:          cobra.MaximumNArgs(1),
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRootCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Output directory for the .encodings.txt files")
	cmd.Flags().BoolP("recursive", "r", false,
		"Scan subdirectories of the input directory")
	cmd.Flags().BoolP("override", "f", false,
		"Overwrite existing .encodings.txt files")
	cmd.Flags().StringP("config", "c", "",
		"Path to config file (default: .svgencoder in current or home directory)")
	cmd.Flags().Bool("history", false,
		"Record this run in the history database")
	cmd.Flags().String("manifest", "",
		"Write a manifest of the run to this file (default: stdout when a format is chosen)")
	cmd.Flags().BoolP("json", "j", false, "Write the manifest as JSON")
	cmd.Flags().BoolP("markdown", "m", false, "Write the manifest as Markdown")

	// Add subcommands
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runRootCmd executes a conversion run.
func runRootCmd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if err := report.Banner(out); err != nil {
		return err
	}

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := svglog.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go watchSignals(ctx, cancel, sigCh, logger)

	return runConvert(ctx, cfg, out, logger)
}

// watchSignals cancels the run when the first signal arrives on sigCh.
// Delivery to sigCh stops at that point, so a second interrupt falls back
// to the default action and terminates the process.
func watchSignals(ctx context.Context, cancel context.CancelFunc, sigCh chan os.Signal, logger *slog.Logger) {
	select {
	case sig := <-sigCh:
		signal.Stop(sigCh)
		logger.Info("received interrupt signal, stopping after current file", "signal", sig.String())
		cancel()
	case <-ctx.Done():
	}
}

// runConvert resolves cfg and encodes every SVG file it selects.
// Progress goes to out. A cancelled run still prints its summary and
// returns nil; a failed conversion aborts the run without a summary.
func runConvert(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	req, err := cfg.Resolve()
	if err != nil {
		return err
	}

	progress := report.NewProgress(out)
	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithObserver(progress.Record),
	)

	summary, err := p.Execute(ctx, req)
	if err != nil {
		return err
	}

	if summary.Cancelled {
		if err := report.Aborted(out); err != nil {
			return err
		}
	}
	if err := report.Summary(out, summary.Count()); err != nil {
		return err
	}

	if cfg.History {
		saveHistory(ctx, cfg.HistoryDir, summary, logger)
	}

	if cfg.WantsManifest() {
		if err := writeManifest(cfg, summary, out); err != nil {
			return err
		}
	}

	return report.Finished(out)
}

// buildConfig creates a Config from defaults, the config file and flags,
// in increasing order of precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	if len(args) > 0 {
		cfg.InputDir = args[0]
	}

	var err error
	if cfg.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}

	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		if cfg.OutputDir, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("recursive") {
		if cfg.Recursive, err = flags.GetBool("recursive"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("override") {
		if cfg.Overwrite, err = flags.GetBool("override"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("history") {
		if cfg.History, err = flags.GetBool("history"); err != nil {
			return nil, err
		}
	}
	if cfg.ManifestFile, err = flags.GetString("manifest"); err != nil {
		return nil, err
	}
	if cfg.JSONManifest, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownManifest, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyConfigFile loads the config file, if any, into cfg.
// A missing file is only an error when its path was given explicitly.
func applyConfigFile(cfg *config.Config) error {
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	cfg.ApplyFile(file)
	return nil
}

// saveHistory records summary in the history database.
// Failures are logged and do not fail the run.
func saveHistory(ctx context.Context, dir string, summary *model.RunSummary, logger *slog.Logger) {
	// Interrupted runs are recorded too.
	ctx = context.WithoutCancel(ctx)

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		logger.Error("failed to open history database", "error", err)
		return
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close history database", "error", err)
		}
	}()

	id, err := db.SaveRun(ctx, summary)
	if err != nil {
		logger.Error("failed to save run", "error", err)
		return
	}
	logger.Info("run recorded", "id", id, "path", db.Path())
}

// writeManifest writes the run manifest in the configured format.
// Without --manifest it goes to out.
func writeManifest(cfg *config.Config, summary *model.RunSummary, out io.Writer) (err error) {
	format := report.FormatText
	switch {
	case cfg.JSONManifest:
		format = report.FormatJSON
	case cfg.MarkdownManifest:
		format = report.FormatMarkdown
	}

	w := out
	if cfg.ManifestFile != "" {
		f, createErr := os.Create(cfg.ManifestFile) //nolint:gosec // User-provided manifest path is intentional
		if createErr != nil {
			return fmt.Errorf("failed to create manifest file: %w", createErr)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
	}

	if _, err = report.NewWriter(format, w, getVersion()).Write(summary); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
