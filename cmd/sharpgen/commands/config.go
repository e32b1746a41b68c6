package commands

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/sharpgen/config"
	"github.com/teranos/sharpgen/errors"
)

var configInitForce bool

// ConfigCmd groups configuration subcommands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sharpgen.toml",
}

var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write a sharpgen.toml with default settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ProjectFile
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return errors.WithHint(
				errors.InvalidOperationf("%s already exists", path),
				"pass --force to overwrite it (a backup is kept)")
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		pterm.Success.Printfln("Wrote %s", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after sharpgen.toml and SHARPGEN_* environment
overrides are applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(cmd)
		if err != nil {
			return err
		}
		if jsonOutput(cmd) {
			return writeJSON(cmd.OutOrStdout(), cfg)
		}
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to encode config")
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing file")
	ConfigCmd.AddCommand(configInitCmd, configShowCmd)
}
