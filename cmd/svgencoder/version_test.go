package main

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/nao1215/svgencoder/internal/config"
)

func TestBuildMetadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		get  func() string
	}{
		{name: "version", get: getVersion},
		{name: "commit", get: getCommit},
		{name: "date", get: getDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			// Falls back to a placeholder when nothing was injected.
			if tt.get() == "" {
				t.Errorf("%s is empty", tt.name)
			}
		})
	}
}

func TestBuildSettingMissingKey(t *testing.T) {
	t.Parallel()

	if got := buildSetting("svgencoder.no-such-key"); got != "" {
		t.Errorf("expected empty value, got %q", got)
	}
}

func TestNewVersionCmd(t *testing.T) {
	t.Parallel()

	t.Run("command has correct use", func(t *testing.T) {
		t.Parallel()
		cmd := NewVersionCmd()
		if cmd.Use != "version" {
			t.Errorf("expected Use to be 'version', got %q", cmd.Use)
		}
		if !strings.Contains(cmd.Long, config.AppName) {
			t.Errorf("expected Long to mention %q, got %q", config.AppName, cmd.Long)
		}
	})

	t.Run("rejects arguments", func(t *testing.T) {
		t.Parallel()
		cmd := NewVersionCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"extra"})
		if err := cmd.Execute(); err == nil {
			t.Error("expected error for extra argument")
		}
	})

	t.Run("command outputs version info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cmd := NewVersionCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		wants := []string{
			config.AppName + " version " + getVersion(),
			"commit: " + getCommit(),
			"built:  " + getDate(),
			runtime.GOOS + "/" + runtime.GOARCH,
		}
		for _, want := range wants {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got %q", want, output)
			}
		}
	})
}
