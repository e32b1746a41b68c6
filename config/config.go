// Package config loads sharpgen settings from sharpgen.toml and SHARPGEN_*
// environment variables.
package config

// ProjectFile is the configuration file name searched for from the working
// directory upwards.
const ProjectFile = "sharpgen.toml"

// EnvPrefix is prepended to every environment override, e.g.
// SHARPGEN_RENDER_INDENT_WIDTH=2.
const EnvPrefix = "SHARPGEN"

// Config is the complete sharpgen configuration.
type Config struct {
	Render  RenderConfig  `mapstructure:"render" toml:"render"`
	Check   CheckConfig   `mapstructure:"check" toml:"check"`
	Typegen TypegenConfig `mapstructure:"typegen" toml:"typegen"`
	Watch   WatchConfig   `mapstructure:"watch" toml:"watch"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

// RenderConfig controls how builders emit C# text.
type RenderConfig struct {
	// IndentWidth is the number of spaces per indent level (0 is legal)
	IndentWidth int `mapstructure:"indent_width" toml:"indent_width"`
	// LangVersion gates language features: "latest", "preview" or a number like "10.0"
	LangVersion string `mapstructure:"lang_version" toml:"lang_version"`
	// GeneratedHeader emits // <auto-generated/> and #nullable enable
	GeneratedHeader bool `mapstructure:"generated_header" toml:"generated_header"`
	// FileScopedNamespaces renders `namespace X;` instead of a braced block
	FileScopedNamespaces bool `mapstructure:"file_scoped_namespaces" toml:"file_scoped_namespaces"`
	// OutputDir is where rendered files are written when no -o flag is given
	OutputDir string `mapstructure:"output_dir" toml:"output_dir"`
	// FileSuffix is appended to the type or model name of every rendered file
	FileSuffix string `mapstructure:"file_suffix" toml:"file_suffix"`
}

// CheckConfig controls syntax diagnostics.
type CheckConfig struct {
	// MaxErrors caps the diagnostics collected per file
	MaxErrors int `mapstructure:"max_errors" toml:"max_errors"`
}

// TypegenConfig controls Go to C# type generation.
type TypegenConfig struct {
	Namespace string `mapstructure:"namespace" toml:"namespace"`
	// JSONAttributes adds System.Text.Json attributes derived from struct tags
	JSONAttributes bool `mapstructure:"json_attributes" toml:"json_attributes"`
}

// WatchConfig controls render --watch.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms"`
}

// LogConfig mirrors the global --json and -v flags.
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"`
}
