// Package commands implements the sharpgen subcommands.
package commands

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/sharpgen/config"
	"github.com/teranos/sharpgen/errors"
)

var (
	configMu     sync.Mutex
	loadedConfig *config.Config
)

// LoadConfig reads the configuration named by the --config flag, or the
// nearest sharpgen.toml. The result is cached for the rest of the process.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	configMu.Lock()
	defer configMu.Unlock()
	if loadedConfig != nil {
		return loadedConfig, nil
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	loadedConfig = cfg
	return cfg, nil
}

// jsonOutput reports whether --json was given.
func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeOutput writes text to dir/name, creating dir as needed.
func writeOutput(dir, name, text string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create output directory %s", dir)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	return path, nil
}

// newRunID returns a short identifier that ties the log lines of one run
// together.
func newRunID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36)
}
