package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/sharpgen/config"
	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/internal/watch"
	"github.com/teranos/sharpgen/logger"
	"github.com/teranos/sharpgen/model"
	"github.com/teranos/sharpgen/verify"
)

var (
	renderOutput   string
	renderWatch    bool
	renderStdout   bool
	renderNoVerify bool
)

// RenderCmd renders model files to C#
var RenderCmd = &cobra.Command{
	Use:   "render MODEL...",
	Short: "Render YAML or TOML models to C# source",
	Long: `Render declarative type models to C# source files.

Each model file becomes one file in the output directory, named after the
model file with render.file_suffix appended (Orders.yaml -> Orders.g.cs).
Rendered text is checked with the tree-sitter C# grammar before it is
written.

Examples:
  sharpgen render models/orders.yaml             # Write to render.output_dir
  sharpgen render models/*.toml -o src/Generated # Explicit output directory
  sharpgen render orders.yaml --stdout           # Print instead of writing
  sharpgen render models/*.yaml --watch          # Re-render on change`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	RenderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output directory (default: render.output_dir)")
	RenderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "Re-render when a model file changes")
	RenderCmd.Flags().BoolVar(&renderStdout, "stdout", false, "Print rendered source instead of writing files")
	RenderCmd.Flags().BoolVar(&renderNoVerify, "no-verify", false, "Skip the tree-sitter check of rendered source")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	outDir := renderOutput
	if outDir == "" {
		outDir = cfg.Render.OutputDir
	}
	r := &modelRenderer{
		cfg:       cfg,
		outDir:    outDir,
		stdout:    renderStdout,
		verify:    !renderNoVerify,
		verbosity: logger.Verbosity,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithRunID(logger.WithComponent(ctx, "render"), newRunID())

	if err := r.renderAll(ctx, args); err != nil && !renderWatch {
		return err
	}
	if !renderWatch {
		return nil
	}

	w, err := watch.New(args, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond, r.rerender)
	if err != nil {
		return err
	}
	pterm.Info.Printfln("Watching %d model file(s), press Ctrl+C to stop", len(args))
	return w.Run(ctx)
}

// modelRenderer renders model files with one configuration.
type modelRenderer struct {
	cfg       *config.Config
	outDir    string
	stdout    bool
	verify    bool
	verbosity int
}

// rerender is the watch callback.
func (r *modelRenderer) rerender(ctx context.Context, paths []string) error {
	if logger.ShouldOutput(r.verbosity, logger.OutputWatchEvents) {
		pterm.Info.Printfln("Changed: %s", strings.Join(paths, ", "))
	}
	return r.renderAll(ctx, paths)
}

// renderAll renders every path and reports each failure; the returned
// error summarises how many failed.
func (r *modelRenderer) renderAll(ctx context.Context, paths []string) error {
	failed, written := 0, 0
	for _, path := range paths {
		if logger.ShouldOutput(r.verbosity, logger.OutputProgress) {
			pterm.Info.Printfln("Rendering %s", path)
		}
		start := time.Now()
		out, err := r.renderFile(ctx, path)
		if err != nil {
			failed++
			if logger.ShouldOutput(r.verbosity, logger.OutputDiagnostics) {
				pterm.Error.Printfln("%s: %v", path, err)
				if hints := errors.FlattenHints(err); hints != "" {
					pterm.Info.Println(hints)
				}
			}
			continue
		}
		if out == "" {
			continue
		}
		written++
		if logger.ShouldOutput(r.verbosity, logger.OutputFilesWritten) {
			msg := "Generated " + out
			if logger.ShouldOutput(r.verbosity, logger.OutputTiming) {
				msg += fmt.Sprintf(" in %s", time.Since(start).Round(time.Millisecond))
			}
			pterm.Success.Println(msg)
		}
	}
	if failed > 0 {
		return errors.Newf("%d of %d model(s) failed to render", failed, len(paths))
	}
	if written > 0 && logger.ShouldOutput(r.verbosity, logger.OutputUserStatus) {
		pterm.Success.Printfln("Rendered %d model(s) to %s", written, r.outDir)
	}
	return nil
}

// renderFile renders one model and returns the written path, or "" when
// printing to stdout.
func (r *modelRenderer) renderFile(ctx context.Context, path string) (string, error) {
	start := time.Now()
	f, err := model.Load(path)
	if err != nil {
		return "", err
	}
	opts, err := model.OptionsFromConfig(r.cfg.Render)
	if err != nil {
		return "", err
	}
	text, err := f.Render(opts)
	if err != nil {
		return "", err
	}

	if r.verify {
		report, err := verify.Syntax(ctx, []byte(text), verify.WithMaxDiagnostics(r.cfg.Check.MaxErrors))
		if err != nil {
			return "", err
		}
		if err := report.Err(); err != nil {
			return "", errors.Wrap(err, "rendered source does not parse")
		}
	}

	if r.stdout {
		os.Stdout.WriteString(text)
		return "", nil
	}
	out, err := writeOutput(r.outDir, f.OutputName(r.cfg.Render.FileSuffix), text)
	if err != nil {
		return "", err
	}
	if logger.ShouldOutput(r.verbosity, logger.OutputGeneratedSource) {
		pterm.Info.Printfln("%s:", out)
		pterm.Println(text)
	}
	logger.LoggerFromContext(ctx).Debugw("rendered model",
		logger.FieldFile, path,
		logger.FieldPath, out,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return out, nil
}
