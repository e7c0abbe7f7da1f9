package cmd

import (
	"fmt"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=v1.2.3".
var Version = ""

// resolveVersion returns the linked version, then the module version from
// the build info. Empty means unknown.
func resolveVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := rdebug.ReadBuildInfo(); ok && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return ""
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pomo version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v := resolveVersion()
			if v == "" {
				v = "unknown"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pomo %s\n", v)
		},
	}
}
