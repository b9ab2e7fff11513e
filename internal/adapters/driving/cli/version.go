package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// buildMetadata describes the running binary.
type buildMetadata struct {
	Version   string
	Commit    string
	Date      string
	Modified  bool
	GoVersion string
	Platform  string
}

// currentBuild merges the link-time values with the VCS settings the
// toolchain embeds; link-time values win.
func currentBuild() buildMetadata {
	meta := buildMetadata{
		Version:   version,
		Commit:    commit,
		Date:      buildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	info, ok := readBuildInfo()
	if !ok {
		return meta
	}
	if info.GoVersion != "" {
		meta.GoVersion = info.GoVersion
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if meta.Commit == "" {
				meta.Commit = setting.Value
			}
		case "vcs.time":
			if meta.Date == "" {
				meta.Date = setting.Value
			}
		case "vcs.modified":
			meta.Modified = setting.Value == "true"
		}
	}
	return meta
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number and build details",
	Run: func(cmd *cobra.Command, _ []string) {
		meta := currentBuild()
		rev := orUnknown(meta.Commit)
		if meta.Modified {
			rev += " (modified)"
		}
		cmd.Printf("splookup version %s\n", meta.Version)
		cmd.Printf("  commit:   %s\n", rev)
		cmd.Printf("  built:    %s\n", orUnknown(meta.Date))
		cmd.Printf("  go:       %s\n", meta.GoVersion)
		cmd.Printf("  platform: %s\n", meta.Platform)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
