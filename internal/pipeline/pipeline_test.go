package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/svgencoder/internal/encoder"
	svglog "github.com/nao1215/svgencoder/internal/log"
	"github.com/nao1215/svgencoder/internal/model"
)

// setupInput creates an input tree and returns a request for it.
func setupInput(t *testing.T, recursive, overwrite bool, files ...string) *model.ConversionRequest {
	t.Helper()

	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "input")
	output := filepath.Join(tmpDir, "output")
	if err := os.MkdirAll(input, 0750); err != nil {
		t.Fatalf("failed to create input: %v", err)
	}
	for _, f := range files {
		path := filepath.Join(input, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte("<svg id=\""+f+"\"/>"), 0600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
	return &model.ConversionRequest{
		InputRoot:  input,
		OutputRoot: output,
		Recursive:  recursive,
		Overwrite:  overwrite,
	}
}

// quietLogger discards log output.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// TestExecute tests a complete run.
func TestExecute(t *testing.T) {
	t.Parallel()

	t.Run("converts all files recursively", func(t *testing.T) {
		t.Parallel()

		req := setupInput(t, true, false, "a.svg", "sub/dir/icon.svg", "notes.txt")
		var observed []string
		p := New(
			WithLogger(quietLogger()),
			WithObserver(func(r *model.ConversionRecord) error {
				observed = append(observed, r.InputPath)
				return nil
			}),
		)

		summary, err := p.Execute(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Count() != 2 {
			t.Fatalf("expected 2 records, got %d", summary.Count())
		}
		if len(observed) != 2 {
			t.Errorf("expected observer to see 2 records, got %d", len(observed))
		}
		if summary.Cancelled {
			t.Error("expected run not to be cancelled")
		}
		if summary.FinishedAt.IsZero() {
			t.Error("expected finish time to be set")
		}

		mirrored := filepath.Join(req.OutputRoot, "sub", "dir", "icon.encodings.txt")
		if _, err := os.Stat(mirrored); err != nil {
			t.Errorf("expected mirrored output at %s: %v", mirrored, err)
		}
	})

	t.Run("non-recursive ignores nested files", func(t *testing.T) {
		t.Parallel()

		req := setupInput(t, false, false, "a.svg", "nested/b.svg")
		summary, err := New(WithLogger(quietLogger())).Execute(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Count() != 1 || filepath.Base(summary.Records[0].InputPath) != "a.svg" {
			t.Errorf("expected only a.svg, got %+v", summary.Records)
		}
	})

	t.Run("empty input produces empty summary", func(t *testing.T) {
		t.Parallel()

		req := setupInput(t, true, false)
		summary, err := New(WithLogger(quietLogger())).Execute(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.Count() != 0 {
			t.Errorf("expected no records, got %d", summary.Count())
		}
	})

	t.Run("second run without overwrite keeps outputs", func(t *testing.T) {
		t.Parallel()

		req := setupInput(t, true, false, "a.svg", "sub/b.svg")
		p := New(WithLogger(quietLogger()))
		if _, err := p.Execute(context.Background(), req); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		target := filepath.Join(req.OutputRoot, "a.encodings.txt")
		first, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}

		summary, err := p.Execute(context.Background(), req)
		if err != nil {
			t.Fatalf("second run failed: %v", err)
		}
		if summary.SkippedCount() != 2 {
			t.Errorf("expected 2 skipped, got %d", summary.SkippedCount())
		}
		second, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if !bytes.Equal(first, second) {
			t.Error("expected output to be unchanged")
		}
	})

	t.Run("overwrite rewrites outputs", func(t *testing.T) {
		t.Parallel()

		req := setupInput(t, false, true, "a.svg")
		target := filepath.Join(req.OutputRoot, "a.encodings.txt")
		if err := os.MkdirAll(req.OutputRoot, 0750); err != nil {
			t.Fatalf("failed to create output: %v", err)
		}
		if err := os.WriteFile(target, []byte("stale"), 0600); err != nil {
			t.Fatalf("failed to write stale output: %v", err)
		}

		summary, err := New(WithLogger(quietLogger())).Execute(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.WrittenCount() != 1 {
			t.Errorf("expected 1 written, got %d", summary.WrittenCount())
		}
		content, err := os.ReadFile(target)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if string(content) == "stale" {
			t.Error("expected output to be rewritten")
		}
	})
}

// TestExecuteCancellation tests cooperative cancellation.
func TestExecuteCancellation(t *testing.T) {
	t.Parallel()

	t.Run("cancelled before start converts nothing", func(t *testing.T) {
		t.Parallel()

		req := setupInput(t, false, false, "a.svg", "b.svg")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		summary, err := New(WithLogger(quietLogger())).Execute(ctx, req)
		if err != nil {
			t.Fatalf("expected nil error on cancellation, got %v", err)
		}
		if !summary.Cancelled {
			t.Error("expected run to be cancelled")
		}
		if summary.Count() != 0 {
			t.Errorf("expected no records, got %d", summary.Count())
		}
	})

	t.Run("cancel during a file finishes that file then stops", func(t *testing.T) {
		t.Parallel()

		req := setupInput(t, false, false, "a.svg", "b.svg", "c.svg")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		calls := 0
		p := New(
			WithLogger(quietLogger()),
			WithConverter(func(path, in, out string, overwrite bool) (*model.ConversionRecord, error) {
				calls++
				cancel()
				return encoder.Convert(path, in, out, overwrite)
			}),
		)

		summary, err := p.Execute(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 1 {
			t.Errorf("expected exactly one conversion, got %d", calls)
		}
		if summary.Count() != 1 || !summary.Cancelled {
			t.Errorf("expected 1 record and cancelled, got %d records cancelled=%v", summary.Count(), summary.Cancelled)
		}
	})
}

// TestExecuteErrors tests aborting on failures.
func TestExecuteErrors(t *testing.T) {
	t.Parallel()

	t.Run("read failure aborts the run", func(t *testing.T) {
		t.Parallel()

		req := setupInput(t, false, false, "a.svg", "b.svg")
		p := New(
			WithLogger(quietLogger()),
			WithConverter(func(path, _, _ string, _ bool) (*model.ConversionRecord, error) {
				return nil, encoder.ErrFileRead
			}),
		)

		summary, err := p.Execute(context.Background(), req)
		if !errors.Is(err, encoder.ErrFileRead) {
			t.Fatalf("expected ErrFileRead, got %v", err)
		}
		if summary.Count() != 0 {
			t.Errorf("expected no records, got %d", summary.Count())
		}
	})

	t.Run("observer error aborts the run", func(t *testing.T) {
		t.Parallel()

		req := setupInput(t, false, false, "a.svg", "b.svg")
		errStop := errors.New("stop")
		p := New(
			WithLogger(quietLogger()),
			WithObserver(func(*model.ConversionRecord) error { return errStop }),
		)

		summary, err := p.Execute(context.Background(), req)
		if !errors.Is(err, errStop) {
			t.Fatalf("expected errStop, got %v", err)
		}
		if summary.Count() != 1 {
			t.Errorf("expected 1 record before abort, got %d", summary.Count())
		}
	})
}

// TestExecuteDebugLogging tests that the default converter logs through the pipeline logger.
func TestExecuteDebugLogging(t *testing.T) {
	t.Parallel()

	req := setupInput(t, false, false, "a.svg")
	var buf bytes.Buffer
	if _, err := New(WithLogger(svglog.NewLogger(&buf, true))).Execute(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "encoded file") {
		t.Errorf("expected per-file debug record, got %q", out)
	}
	if !strings.Contains(out, "data:image/svg+x...(") {
		t.Errorf("expected shortened data URI, got %q", out)
	}
}
