// Package config loads the optional tool configuration file. It supplies
// defaults for the CLI only; it does not persist editor sessions.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SearchDefaults seeds the find/replace option flags.
type SearchDefaults struct {
	CaseSensitive bool `yaml:"case_sensitive"`
	WholeWord     bool `yaml:"whole_word"`
	Regex         bool `yaml:"regex"`
}

// PreviewDefaults seeds the preview server.
type PreviewDefaults struct {
	Addr string `yaml:"addr"`
}

// Config is the tool configuration.
type Config struct {
	Search  SearchDefaults  `yaml:"search"`
	Preview PreviewDefaults `yaml:"preview"`
	Color   bool            `yaml:"color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Preview: PreviewDefaults{Addr: ":8701"},
		Color:   true,
	}
}

// Load reads the YAML config at path, layered over the defaults. A missing
// file is not an error: the defaults are returned. A malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
