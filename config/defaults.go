package config

import "github.com/spf13/viper"

// Default values, shared by SetDefaults and Default.
const (
	DefaultIndentWidth = 4
	DefaultLangVersion = "latest"
	DefaultOutputDir   = "generated"
	DefaultFileSuffix  = ".g.cs"
	DefaultMaxErrors   = 50
	DefaultNamespace   = "Generated"
	DefaultDebounceMS  = 500
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("render.indent_width", DefaultIndentWidth)
	v.SetDefault("render.lang_version", DefaultLangVersion)
	v.SetDefault("render.generated_header", true)
	v.SetDefault("render.file_scoped_namespaces", true)
	v.SetDefault("render.output_dir", DefaultOutputDir)
	v.SetDefault("render.file_suffix", DefaultFileSuffix)

	v.SetDefault("check.max_errors", DefaultMaxErrors)

	v.SetDefault("typegen.namespace", DefaultNamespace)
	v.SetDefault("typegen.json_attributes", true)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// Default returns the configuration produced by SetDefaults alone.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			IndentWidth:          DefaultIndentWidth,
			LangVersion:          DefaultLangVersion,
			GeneratedHeader:      true,
			FileScopedNamespaces: true,
			OutputDir:            DefaultOutputDir,
			FileSuffix:           DefaultFileSuffix,
		},
		Check:   CheckConfig{MaxErrors: DefaultMaxErrors},
		Typegen: TypegenConfig{Namespace: DefaultNamespace, JSONAttributes: true},
		Watch:   WatchConfig{DebounceMS: DefaultDebounceMS},
	}
}
