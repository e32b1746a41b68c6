package config

import (
	"strings"

	"github.com/teranos/sharpgen/errors"
	"github.com/teranos/sharpgen/langversion"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Render.IndentWidth < 0 {
		return errors.WithHint(
			errors.Newf("render.indent_width must be >= 0, got %d", c.Render.IndentWidth),
			"use 0 for no indentation")
	}

	if _, err := langversion.Parse(c.Render.LangVersion); err != nil {
		return errors.Wrap(err, "render.lang_version")
	}

	if c.Render.FileSuffix != "" && !strings.HasSuffix(c.Render.FileSuffix, ".cs") {
		return errors.Newf("render.file_suffix must end in .cs, got %q", c.Render.FileSuffix)
	}

	// Zero would discard every diagnostic
	if c.Check.MaxErrors <= 0 {
		return errors.Newf("check.max_errors must be > 0, got %d", c.Check.MaxErrors)
	}

	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	return nil
}
