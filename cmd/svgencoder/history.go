package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/svgencoder/internal/config"
	"github.com/nao1215/svgencoder/internal/database"
	"github.com/nao1215/svgencoder/internal/model"
)

// defaultHistoryLimit is the number of runs listed when --limit is not given.
const defaultHistoryLimit = 20

// historyTimeLayout is the timestamp layout of the history tables.
const historyTimeLayout = "2006-01-02 15:04:05"

// NewHistoryCmd creates the history command.
// This command reads runs recorded with --history from the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded conversion runs",
		Long: `History lists conversion runs recorded in the history database.

Runs are only recorded when svgencoder is started with --history, or when
the config file sets "history: true". Without a run ID the most recent runs
are listed; with a run ID the files converted by that run are shown.

Examples:
  # List the 20 most recent runs
  svgencoder history

  # Show the files of run 3
  svgencoder history 3

  # Output as JSON
  svgencoder history --json

  # Read a history database in another directory
  svgencoder history --dir ./history`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output history in JSON format")
	cmd.Flags().StringP("dir", "d", "",
		"Directory of the history database (default: XDG data directory)")
	cmd.Flags().StringP("config", "c", "",
		"Path to config file (default: .svgencoder in current or home directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("limit must be zero or positive, got %d", limit)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	dir, err := historyDir(cmd)
	if err != nil {
		return err
	}

	var runID int64
	if len(args) > 0 {
		runID, err = strconv.ParseInt(args[0], 10, 64)
		if err != nil || runID <= 0 {
			return fmt.Errorf("invalid run ID: %s", args[0])
		}
	}

	out := cmd.OutOrStdout()
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dir, opts)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) && !asJSON {
			fmt.Fprintln(out, "No conversion history found.")
			fmt.Fprintln(out, "\nUse 'svgencoder --history <input-dir>' to record runs.")
			return nil
		}
		return err
	}
	defer func() { _ = db.Close() }()

	ctx := cmd.Context()
	if runID > 0 {
		run, err := db.GetRun(ctx, runID)
		if err != nil {
			return fmt.Errorf("failed to get run: %w", err)
		}
		if run == nil {
			return fmt.Errorf("run %d not found", runID)
		}
		rows, err := db.ListConversions(ctx, runID)
		if err != nil {
			return fmt.Errorf("failed to get conversions: %w", err)
		}
		if asJSON {
			return writeJSON(out, struct {
				Run         *database.RunRecord      `json:"run"`
				Conversions []database.ConversionRow `json:"conversions"`
			}{run, rows})
		}
		printRun(out, run, rows)
		return nil
	}

	runs, err := db.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if asJSON {
		return writeJSON(out, runs)
	}
	printRuns(out, runs)
	return nil
}

// historyDir returns the database directory from --dir, the config file
// or the XDG default, in that order.
func historyDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return "", err
	}
	if dir != "" {
		return dir, nil
	}

	cfg := config.NewConfig()
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return "", err
	}
	if err := applyConfigFile(cfg); err != nil {
		return "", err
	}
	return cfg.HistoryDir, nil
}

// printRuns writes the run table.
func printRuns(out io.Writer, runs []database.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No conversion runs recorded.")
		return
	}

	fmt.Fprintf(out, "Conversion history (%d run%s):\n\n", len(runs), model.Plural(len(runs)))
	fmt.Fprintf(out, "  %-6s  %-20s  %-10s  %-7s  %s\n", "ID", "Date", "Status", "Files", "Input")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 72))

	for _, run := range runs {
		fmt.Fprintf(out, "  %-6d  %-20s  %-10s  %-7d  %s\n",
			run.ID,
			run.StartedAt.Local().Format(historyTimeLayout),
			titleStatus(run.Status()),
			run.FileCount,
			run.InputRoot,
		)
	}

	fmt.Fprintln(out, "\nUse 'svgencoder history <id>' to list the files of a run.")
}

// printRun writes the details of one run and its files.
func printRun(out io.Writer, run *database.RunRecord, rows []database.ConversionRow) {
	fmt.Fprintf(out, "Run %d\n\n", run.ID)
	fmt.Fprintf(out, "  Status:    %s\n", titleStatus(run.Status()))
	fmt.Fprintf(out, "  Started:   %s\n", run.StartedAt.Local().Format(historyTimeLayout))
	fmt.Fprintf(out, "  Duration:  %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(out, "  Input:     %s\n", run.InputRoot)
	fmt.Fprintf(out, "  Output:    %s\n", run.OutputRoot)
	fmt.Fprintf(out, "  Recursive: %t\n", run.Recursive)
	fmt.Fprintf(out, "  Override:  %t\n", run.Overwrite)
	fmt.Fprintf(out, "  Files:     %d (%d skipped)\n\n", run.FileCount, run.SkippedCount)

	if len(rows) == 0 {
		return
	}

	fmt.Fprintf(out, "  %-8s  %-9s  %s\n", "Status", "Length", "File")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 72))
	for _, row := range rows {
		status := model.StatusWritten
		if row.Skipped {
			status = model.StatusSkipped
		}
		fmt.Fprintf(out, "  %-8s  %-9d  %s\n", titleStatus(status), row.EncodedLength, row.InputPath)
	}
}

// titleStatus renders a lower-case status for display, e.g. "Completed".
func titleStatus(status string) string {
	return cases.Title(language.English).String(status)
}

// writeJSON writes v as indented JSON.
func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
