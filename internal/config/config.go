// Package config loads optional engine defaults from a YAML file. Grounded
// on dcosson-h2/internal/config/config.go's Load/LoadFrom pattern: missing
// files are not an error.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds defaults an engine invocation may override per-script.
type Config struct {
	// Pty overrides the default PTY size used by "start" when the script
	// doesn't specify one.
	Pty PtyConfig `yaml:"pty"`

	// FontDir, if set, overrides the embedded font set with TTFs loaded
	// from disk (regular.ttf, bold.ttf, italic.ttf, bold_italic.ttf).
	FontDir string `yaml:"font_dir"`
}

// PtyConfig mirrors the width/height portion of proc.Config.
type PtyConfig struct {
	Width  uint16 `yaml:"width"`
	Height uint16 `yaml:"height"`
}

// ConfigDir returns the engine configuration directory (~/.vtstage/).
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".vtstage")
	}
	return filepath.Join(home, ".vtstage")
}

// Load reads the config from ~/.vtstage/config.yaml. If the file does not
// exist, it returns an empty Config with no error.
func Load() (*Config, error) {
	return LoadFrom(filepath.Join(ConfigDir(), "config.yaml"))
}

// LoadFrom reads the config from the given path. If the file does not
// exist, it returns an empty Config with no error.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
