// Package config loads the zio CLI configuration.
//
// Config files are HuJSON: JSON with comments and trailing commas allowed.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

var (
	errConfigRead    = errors.New("cannot read config file")
	errConfigInvalid = errors.New("invalid config file")
	errBufferSize    = errors.New("buffer_size must be positive")
)

// Config holds all configuration options for the zio tool.
type Config struct {
	// From config files (serialized)
	HistoryFile string `json:"history_file,omitempty"`
	BufferSize  int    `json:"buffer_size,omitempty"`
	ReadOnly    bool   `json:"read_only,omitempty"`

	// Source is the config file that was loaded, empty if none (not serialized).
	Source string `json:"-"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		BufferSize: 4096,
	}
}

// globalPath returns the path of the global config file.
// Uses $XDG_CONFIG_HOME/zio/config.json if set, otherwise
// ~/.config/zio/config.json. Returns empty string if neither can be derived.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "zio", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "zio", "config.json")
	}

	return ""
}

// Load loads configuration layered over the defaults. When path is
// non-empty that file is used (and must exist); otherwise the global user
// config is used if present (see globalPath). Flag overrides are applied by
// the caller after Load.
func Load(path string, env map[string]string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = globalPath(env)
		if path == "" {
			return cfg, nil
		}

		if _, err := os.Stat(path); err != nil {
			// A missing global config is not an error.
			return cfg, nil
		}
	}

	if err := loadFile(path, &cfg); err != nil {
		return Config{}, err
	}

	cfg.Source = path

	if cfg.BufferSize <= 0 {
		return Config{}, fmt.Errorf("%w: got %d in %s", errBufferSize, cfg.BufferSize, path)
	}

	if cfg.HistoryFile != "" && !filepath.IsAbs(cfg.HistoryFile) {
		abs, err := filepath.Abs(cfg.HistoryFile)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", errConfigInvalid, path, err)
		}

		cfg.HistoryFile = abs
	}

	return cfg, nil
}

// loadFile reads a HuJSON config file into cfg, layering over its current
// values.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errConfigRead, path, err)
	}

	// Standardize strips comments and trailing commas so the standard
	// library decoder can handle the rest.
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", errConfigInvalid, path, err)
	}

	if err := json.Unmarshal(standardized, cfg); err != nil {
		return fmt.Errorf("%w: %s: %v", errConfigInvalid, path, err)
	}

	return nil
}
