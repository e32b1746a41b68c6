package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/sharpgen/errors"
)

// header is written above the marshalled settings by WriteDefault.
const header = `# sharpgen configuration
# Every key can be overridden with SHARPGEN_<SECTION>_<KEY>, e.g. SHARPGEN_RENDER_INDENT_WIDTH=2

`

// WriteDefault writes the default configuration to path. An existing file is
// kept as path.back before it is replaced.
func WriteDefault(path string) error {
	return Save(Default(), path)
}

// Save marshals cfg as TOML to path, backing up any existing file first.
func Save(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "refusing to save invalid config")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	if err := createBackup(path); err != nil {
		return err
	}

	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// createBackup copies an existing config to path.back
func createBackup(path string) error {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(BackupPath(path), content, 0o644); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}
	return nil
}

// BackupPath returns where Save keeps the previous version of path.
func BackupPath(path string) string {
	return path + ".back"
}
