package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/ironsheep/hotspot-map/internal/config"
)

// Version information - set by ldflags during build
var (
	Version   = ""
	BuildTime = ""
	GitCommit = ""
)

// getVersion returns the ldflags version, then the module version, then
// "(devel)".
func getVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// buildSetting returns the ldflags value or the named VCS build setting.
func buildSetting(ldflag, key string) string {
	if ldflag != "" {
		return ldflag
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == key {
				if key == "vcs.revision" && len(s.Value) > 7 {
					return s.Value[:7]
				}
				return s.Value
			}
		}
	}
	return "unknown"
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, getVersion())
			fmt.Fprintf(cmd.OutOrStdout(), "  Build time: %s\n", buildSetting(BuildTime, "vcs.time"))
			fmt.Fprintf(cmd.OutOrStdout(), "  Git commit: %s\n", buildSetting(GitCommit, "vcs.revision"))
		},
	}
}
