package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/svgencoder/internal/database"
	"github.com/nao1215/svgencoder/internal/model"
)

// seedHistory stores one completed and one cancelled run in dir.
func seedHistory(t *testing.T, dir string) {
	t.Helper()

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	req := model.ConversionRequest{InputRoot: "/in", OutputRoot: "/out"}

	first := model.NewRunSummary(req)
	first.StartedAt = started
	first.Add(model.ConversionRecord{
		InputPath:     "/in/a.svg",
		RelativeDir:   ".",
		Stem:          "a",
		OutputFiles:   []string{"/out/a.encodings.txt"},
		EncodedLength: 100,
	})
	first.Add(model.ConversionRecord{
		InputPath:   "/in/b.svg",
		RelativeDir: ".",
		Stem:        "b",
		OutputFiles: []string{"/out/b.encodings.txt"},
		Skipped:     true,
	})
	first.FinishedAt = started.Add(time.Second)

	second := model.NewRunSummary(req)
	second.StartedAt = started.Add(time.Hour)
	second.Cancelled = true
	second.FinishedAt = second.StartedAt.Add(time.Second)

	for _, s := range []*model.RunSummary{first, second} {
		if _, err := db.SaveRun(context.Background(), s); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
	}
}

// executeHistory runs the history command with args and returns its stdout.
func executeHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewHistoryCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history [run-id]" {
			t.Errorf("expected use 'history [run-id]', got %q", cmd.Use)
		}
	})

	t.Run("has limit flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("limit")
		if flag == nil {
			t.Fatal("expected limit flag")
		}
		if flag.DefValue != "20" {
			t.Errorf("expected default '20', got %q", flag.DefValue)
		}
	})

	t.Run("has json and dir flags", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("json") == nil {
			t.Error("expected json flag")
		}
		if cmd.Flags().Lookup("dir") == nil {
			t.Error("expected dir flag")
		}
	})
}

// TestRunHistoryCmd tests the history command execution.
func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("reports missing database", func(t *testing.T) {
		t.Parallel()
		out, err := executeHistory(t, "--dir", filepath.Join(t.TempDir(), "none"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "No conversion history found.") {
			t.Errorf("expected missing history message, got %q", out)
		}
	})

	t.Run("lists runs newest first", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		seedHistory(t, dir)

		out, err := executeHistory(t, "--dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Conversion history (2 runs):") {
			t.Errorf("expected two runs, got %q", out)
		}
		cancelled := strings.Index(out, "Cancelled")
		completed := strings.Index(out, "Completed")
		if cancelled < 0 || completed < 0 || cancelled > completed {
			t.Errorf("expected cancelled run before completed run, got %q", out)
		}
	})

	t.Run("limit restricts the listing", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		seedHistory(t, dir)

		out, err := executeHistory(t, "--dir", dir, "-n", "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Conversion history (1 run):") {
			t.Errorf("expected one run, got %q", out)
		}
	})

	t.Run("shows files of a run", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		seedHistory(t, dir)

		out, err := executeHistory(t, "--dir", dir, "1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Run 1", "/in/a.svg", "/in/b.svg", "Written", "Skipped", "(1 skipped)"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q, got %q", want, out)
			}
		}
	})

	t.Run("outputs JSON", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		seedHistory(t, dir)

		out, err := executeHistory(t, "--dir", dir, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var runs []database.RunRecord
		if err := json.Unmarshal([]byte(out), &runs); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}
		if !runs[0].Cancelled {
			t.Error("expected newest run to be cancelled")
		}
	})

	t.Run("rejects invalid run ID", func(t *testing.T) {
		t.Parallel()
		_, err := executeHistory(t, "--dir", t.TempDir(), "abc")
		if err == nil || !strings.Contains(err.Error(), "invalid run ID") {
			t.Errorf("expected invalid run ID error, got %v", err)
		}
	})

	t.Run("unknown run ID", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		seedHistory(t, dir)

		_, err := executeHistory(t, "--dir", dir, "99")
		if err == nil || !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected not found error, got %v", err)
		}
	})
}

func TestTitleStatus(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		model.RunCompleted:  "Completed",
		model.RunCancelled:  "Cancelled",
		model.StatusSkipped: "Skipped",
	}
	for in, want := range tests {
		if got := titleStatus(in); got != want {
			t.Errorf("titleStatus(%q) = %q, want %q", in, got, want)
		}
	}
}
