package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/sharpgen/cmd/sharpgen/commands"
	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "sharpgen",
	Short: "sharpgen - C# source generation and checking from Go",
	Long: `sharpgen - build, render and check C# source.

Available commands:
  render  - Render YAML or TOML type models to C#
  check   - Check C# files for syntax errors
  outline - Print the declaration tree of a C# file
  typegen - Generate C# records from Go structs
  config  - Manage sharpgen.toml

Examples:
  sharpgen config init                       # Write sharpgen.toml
  sharpgen render models/*.yaml -o Generated # Render models
  sharpgen check Generated/*.g.cs            # Check output
  sharpgen typegen -p ./api -n Acme.Api      # Mirror Go types`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json")

		// config init must work next to a broken sharpgen.toml
		if cmd.Name() != "init" {
			cfg, err := commands.LoadConfig(cmd)
			if err != nil {
				return err
			}
			jsonLogs = jsonLogs || cfg.Log.JSON
			if cfg.Log.Verbosity > verbosity {
				verbosity = cfg.Log.Verbosity
			}
		}

		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger.Logger.Debugw("starting command",
			logger.FieldCommand, cmd.CommandPath(),
			"verbosity", logger.LevelName(verbosity))
		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().String("config", "", "Config file (default: nearest sharpgen.toml)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "JSON output for logs and machine-readable command results")

	// Add commands
	rootCmd.AddCommand(commands.RenderCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.OutlineCmd)
	rootCmd.AddCommand(commands.TypegenCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if hints := errors.FlattenHints(err); hints != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hints)
		}
		os.Exit(1)
	}
}
