package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/typegen"
	"github.com/teranos/sharpgen/typegen/csharp"
	"github.com/teranos/sharpgen/verify"
)

var (
	typegenOutput     string
	typegenPackages   []string
	typegenNamespace  string
	typegenNoJSONAttr bool
)

// TypegenCmd represents the typegen command
var TypegenCmd = &cobra.Command{
	Use:   "typegen",
	Short: "Generate C# records from Go source",
	Long: `Generate C# type definitions from Go structs.

This command parses Go source code and generates corresponding C# records
and enums. It handles:
  - Struct types → sealed records with init-only properties
  - Named string types with consts → enums using JsonStringEnumConverter
  - JSON tags for wire names and omitempty
  - Pointer and omitempty fields as nullable
  - time.Time as DateTimeOffset
  - map[string]interface{} as Dictionary<string, object?>
  - csharp:"Type" tags to override a field type, csharp:"-" to drop it

Examples:
  sharpgen typegen -p ./api -n Acme.Api                 # Generate to stdout
  sharpgen typegen -p ./api -n Acme.Api -o Generated/   # Write to directory
  sharpgen typegen -p example.com/svc/events,./api      # Several packages`,
	RunE: runTypegen,
}

func init() {
	TypegenCmd.Flags().StringVarP(&typegenOutput, "output", "o", "", "Output directory (default: stdout)")
	TypegenCmd.Flags().StringSliceVarP(&typegenPackages, "packages", "p", nil, "Go packages to process (import paths or ./relative)")
	TypegenCmd.Flags().StringVarP(&typegenNamespace, "namespace", "n", "", "C# namespace (default: typegen.namespace)")
	TypegenCmd.Flags().BoolVar(&typegenNoJSONAttr, "no-json-attributes", false, "Omit System.Text.Json attributes")
	_ = TypegenCmd.MarkFlagRequired("packages")
}

func runTypegen(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	gen := csharp.NewGenerator(cfg.Typegen.Namespace)
	if typegenNamespace != "" {
		gen.Namespace = typegenNamespace
	}
	gen.JSONAttributes = cfg.Typegen.JSONAttributes && !typegenNoJSONAttr
	gen.IndentWidth = cfg.Render.IndentWidth
	gen.GeneratedHeader = cfg.Render.GeneratedHeader
	gen.FileScoped = cfg.Render.FileScopedNamespaces

	for _, pkg := range typegenPackages {
		result, err := typegen.GenerateFromPackageDir("", pkg)
		if err != nil {
			return errors.Wrapf(err, "failed to generate types for %s", pkg)
		}

		output, err := gen.GenerateFile(result)
		if err != nil {
			return err
		}
		report, err := verify.Syntax(cmd.Context(), []byte(output))
		if err != nil {
			return err
		}
		if err := report.Err(); err != nil {
			return errors.Wrapf(err, "generated C# for %s does not parse", pkg)
		}

		if typegenOutput == "" {
			os.Stdout.WriteString("// Package: " + pkg + "\n")
			os.Stdout.WriteString(output)
			continue
		}

		filename := typegen.ToPascalCase(result.PackageName) + cfg.Render.FileSuffix
		path, err := writeOutput(typegenOutput, filename, output)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("Generated %s (%d types)", path, len(result.TypeNames()))
	}
	return nil
}
