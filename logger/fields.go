package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for structured logging across sharpgen.
const (
	// Components
	FieldComponent = "component"
	FieldGenerator = "generator"
	FieldCommand   = "command"

	// Inputs and outputs
	FieldFile      = "file"
	FieldPath      = "path"
	FieldHint      = "hint"
	FieldPackage   = "package"
	FieldNamespace = "namespace"
	FieldType      = "type"
	FieldLine      = "line"
	FieldColumn    = "column"

	// Language
	FieldLangVersion = "lang_version"
	FieldFeature     = "feature"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount       = "count"
	FieldSize        = "size"
	FieldDiagnostics = "diagnostics"
)

// Context keys for propagating logging context
type contextKey string

const (
	componentKey contextKey = "logger_component"
	runIDKey     contextKey = "logger_run_id"
)

// FieldRunID identifies one pipeline or CLI run
const FieldRunID = "run_id"

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// WithRunID adds a run identifier to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Pipeline struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewPipeline() *Pipeline {
//	    return &Pipeline{logger: logger.ComponentLogger("harness")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
