package typegen

// Generator renders a Result in one target language. typegen/csharp is the
// implementation sharpgen ships.
type Generator interface {
	// GenerateFile renders every type of result into a single source file
	GenerateFile(result *Result) (string, error)

	// FileExtension is the extension without the dot, e.g. "cs"
	FileExtension() string

	// Language names the target, e.g. "csharp"
	Language() string
}
