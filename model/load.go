package model

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/teranos/sharpgen/errors"
)

// Load reads a model from path. The format follows the extension: .yaml and
// .yml decode as YAML, .toml as TOML. Unknown keys are rejected in both.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model %s", path)
	}
	f, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, errors.Wrapf(err, "model %s", path)
	}
	f.Path = path
	return f, nil
}

// Decode parses model text in the format named by ext (".yaml", ".yml" or
// ".toml").
func Decode(ext string, data []byte) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, errors.Wrap(err, "failed to parse YAML")
		}
	case ".toml":
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse TOML")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.Newf("unknown TOML keys: %s", strings.Join(keys, ", "))
		}
	default:
		return nil, errors.WithHint(
			errors.InvalidArgumentf("unsupported model format %q", ext),
			"use .yaml, .yml or .toml")
	}
	return &f, nil
}

// IsModelFile reports whether path has a model extension.
func IsModelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".toml":
		return true
	}
	return false
}
