package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/nao1215/svgencoder/internal/config"
)

// Build metadata injected with -ldflags "-X main.version=...".
var (
	version = ""
	commit  = ""
	date    = ""
)

// shortCommitLen is the number of hash characters shown for a VCS revision.
const shortCommitLen = 7

// buildSetting returns the value of key from the embedded build settings.
func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

// getVersion returns the release version, the module version recorded by
// go install, or "(devel)".
func getVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// getCommit returns the abbreviated commit hash the binary was built from.
func getCommit() string {
	if commit != "" {
		return commit
	}
	rev := buildSetting("vcs.revision")
	if rev == "" {
		return "unknown"
	}
	if len(rev) > shortCommitLen {
		rev = rev[:shortCommitLen]
	}
	if buildSetting("vcs.modified") == "true" {
		rev += "-dirty"
	}
	return rev
}

// getDate returns the commit time of the build, or "unknown".
func getDate() string {
	if date != "" {
		return date
	}
	if t := buildSetting("vcs.time"); t != "" {
		return t
	}
	return "unknown"
}

// printVersion writes the version block shown by the version command.
func printVersion(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s version %s\n  commit: %s\n  built:  %s\n  go:     %s %s/%s\n",
		config.AppName, getVersion(), getCommit(), getDate(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return err
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: fmt.Sprintf(`Print the version of %s together with the commit it was built from,
the commit time and the Go toolchain and platform of the binary.`, config.AppName),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printVersion(cmd.OutOrStdout())
		},
	}
}
