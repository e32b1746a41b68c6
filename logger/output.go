package logger

// OutputCategory defines a category of CLI output that can be enabled/disabled.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT is displayed:
//
//	0 (default) - diagnostics, final status
//	1 (-v)      - + progress, files written, watch events
//	2 (-vv)     - + timing
//	4 (-vvvv)   - + full generated source echoed to the terminal
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputDiagnostics OutputCategory = iota // Syntax diagnostics with suggestions
	OutputUserStatus                        // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress     // Per-file progress
	OutputFilesWritten // Paths of generated files
	OutputWatchEvents  // File change notifications in watch mode

	// Level 2 (-vv) - Detailed
	OutputTiming // Operation timing

	// Level 4 (-vvvv) - Full dump
	OutputGeneratedSource // Full generated source text
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputDiagnostics: VerbosityUser,
	OutputUserStatus:  VerbosityUser,

	OutputProgress:     VerbosityInfo,
	OutputFilesWritten: VerbosityInfo,
	OutputWatchEvents:  VerbosityInfo,

	OutputTiming: VerbosityDebug,

	OutputGeneratedSource: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}
