package commands

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/logger"
	"github.com/teranos/sharpgen/syntax"
	"github.com/teranos/sharpgen/verify"
)

// CheckCmd reports syntax problems in C# files
var CheckCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Check C# files for syntax errors",
	Long: `Check C# source files with two parsers.

The tree-sitter C# grammar reports every syntax error it can recover from,
with a suggested fix. The declaration parser behind the expectation API
reports the first construct it cannot read, which is what a test using
expect.Source would fail on.

Examples:
  sharpgen check Generated/*.g.cs
  sharpgen check Orders.g.cs --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

// FileCheck is the outcome for one file.
type FileCheck struct {
	File        string              `json:"file"`
	Diagnostics []verify.Diagnostic `json:"diagnostics"`
	Truncated   bool                `json:"truncated,omitempty"`
	ParseError  string              `json:"parse_error,omitempty"`

	parseErr *syntax.ParseError
}

// OK reports whether both parsers accepted the file.
func (c *FileCheck) OK() bool {
	return len(c.Diagnostics) == 0 && c.ParseError == ""
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	verbosity := logger.Verbosity
	var results []*FileCheck
	failed := 0
	for _, path := range args {
		if logger.ShouldOutput(verbosity, logger.OutputProgress) && !jsonOutput(cmd) {
			pterm.Info.Printfln("Checking %s", path)
		}
		res, err := checkFile(cmd.Context(), path, cfg.Check.MaxErrors)
		if err != nil {
			return err
		}
		if !res.OK() {
			failed++
		}
		results = append(results, res)
	}

	if jsonOutput(cmd) {
		if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		printChecks(results, verbosity)
	}

	if failed > 0 {
		return errors.Mark(errors.Newf("%d of %d file(s) have syntax errors", failed, len(args)), errors.ErrSyntax)
	}
	if !jsonOutput(cmd) && logger.ShouldOutput(verbosity, logger.OutputUserStatus) {
		pterm.Success.Printfln("%d file(s) checked, no syntax errors", len(args))
	}
	return nil
}

// checkFile runs both parsers over path. The error return is for I/O and
// parser failures, not for invalid source.
func checkFile(ctx context.Context, path string, maxErrors int) (*FileCheck, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	report, err := verify.Syntax(ctx, src, verify.WithMaxDiagnostics(maxErrors))
	if err != nil {
		return nil, errors.Wrapf(err, "check %s", path)
	}

	res := &FileCheck{File: path, Diagnostics: report.Diagnostics, Truncated: report.Truncated}
	if _, err := syntax.Parse(path, string(src)); err != nil {
		var pe *syntax.ParseError
		if !errors.As(err, &pe) {
			return nil, err
		}
		res.parseErr = pe
		res.ParseError = pe.Error()
	}
	return res, nil
}

// printChecks lists failing files with their diagnostics; passing files
// are listed from -v up.
func printChecks(results []*FileCheck, verbosity int) {
	for _, res := range results {
		if res.OK() {
			if logger.ShouldOutput(verbosity, logger.OutputProgress) {
				pterm.Success.Printfln("%s", res.File)
			}
			continue
		}
		if !logger.ShouldOutput(verbosity, logger.OutputDiagnostics) {
			continue
		}
		pterm.Error.Printfln("%s", res.File)
		for _, d := range res.Diagnostics {
			pterm.Printfln("  %s", d.String())
		}
		if res.Truncated {
			pterm.Warning.Println("  more errors were found; only the first ones are listed")
		}
		if res.parseErr != nil {
			pterm.Println(res.parseErr.FormatError(syntax.ErrorContextTerminal))
		}
	}
}
