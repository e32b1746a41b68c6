package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/sharpgen/internal/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sharpgen version information",
	Long:  `Display version, build time, commit hash, and platform information for the sharpgen binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if jsonOutput(cmd) {
			return writeJSON(cmd.OutOrStdout(), info)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		return nil
	},
}
