package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: VerbosityUser},
		{name: "Console output mode", jsonOutput: false, verbosity: VerbosityInfo},
		{name: "Console debug", jsonOutput: false, verbosity: VerbosityDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			err := Initialize(tt.jsonOutput, tt.verbosity)
			if err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if Logger == nil {
				t.Fatal("Initialize() did not set global Logger")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("Initialize() JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}
			assert.Equal(t, tt.verbosity, Verbosity)
			want := VerbosityToLevel(tt.verbosity)
			assert.True(t, Logger.Desugar().Core().Enabled(want))
			if want > zapcore.DebugLevel {
				assert.False(t, Logger.Desugar().Core().Enabled(want-1))
			}

			Logger = zap.NewNop().Sugar()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{VerbosityAll, zapcore.DebugLevel},
		{9, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "All (-vvvv+)", LevelName(7))
	assert.Equal(t, "Unknown", LevelName(-2))
}

func TestShouldOutput(t *testing.T) {
	assert.True(t, ShouldOutput(0, OutputDiagnostics))
	assert.True(t, ShouldOutput(0, OutputUserStatus))
	assert.False(t, ShouldOutput(0, OutputProgress))
	assert.False(t, ShouldOutput(0, OutputFilesWritten))
	assert.True(t, ShouldOutput(1, OutputFilesWritten))
	assert.True(t, ShouldOutput(1, OutputWatchEvents))
	assert.False(t, ShouldOutput(1, OutputTiming))
	assert.True(t, ShouldOutput(2, OutputTiming))
	assert.False(t, ShouldOutput(3, OutputGeneratedSource))
	assert.True(t, ShouldOutput(4, OutputGeneratedSource))

	// unknown categories need full verbosity
	assert.False(t, ShouldOutput(3, OutputCategory(99)))
	assert.True(t, ShouldOutput(4, OutputCategory(99)))
}

func TestFieldsFromContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, FieldsFromContext(ctx))

	ctx = WithRunID(ctx, "r1")
	ctx = WithComponent(ctx, "harness")
	assert.Equal(t, []interface{}{FieldRunID, "r1", FieldComponent, "harness"}, FieldsFromContext(ctx))
}

func TestLoggerFromContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Logger = zap.New(core).Sugar()
	defer func() { Logger = zap.NewNop().Sugar() }()

	ctx := WithComponent(context.Background(), "model")
	LoggerFromContext(ctx).Debugw("rendered", FieldFile, "types.yaml")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "model", fields[FieldComponent])
		assert.Equal(t, "types.yaml", fields[FieldFile])
	}

	assert.Same(t, Logger, LoggerFromContext(context.Background()))
}

func TestComponentLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Logger = zap.New(core).Sugar()
	defer func() { Logger = zap.NewNop().Sugar() }()

	ComponentLogger("typegen").Debugw("loaded", FieldPackage, "example.com/x")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "typegen", entries[0].LoggerName)
	}
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		name        string
		setupLogger bool
	}{
		{name: "Cleanup with initialized logger", setupLogger: true},
		{name: "Cleanup with nil logger (should not panic)", setupLogger: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupLogger {
				Logger = zap.NewNop().Sugar()
			} else {
				Logger = nil
			}

			assert.NotPanics(t, Cleanup)

			if tt.setupLogger && Logger == nil {
				t.Error("Cleanup() should not nil out the logger")
			}
			Logger = zap.NewNop().Sugar()
		})
	}
}
