package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls which checks run and how the report is presented.
// The zero value enables everything.
type Config struct {
	// DisabledChecks lists issue kinds (by their report names) that the
	// analyzer should suppress.
	DisabledChecks []string `yaml:"disabled_checks"`

	// Color selects terminal coloring: auto, always, or never.
	Color string `yaml:"color"`

	// History is the path of the SQLite report history database; empty
	// disables persistence.
	History string `yaml:"history"`

	disabled map[string]bool
}

func Default() *Config {
	cfg := &Config{Color: "auto"}
	cfg.index()
	return cfg
}

// Load reads a YAML config file. A missing file is not an error: the
// defaults apply.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.index()
	return cfg, nil
}

// Disable suppresses additional checks at runtime.
func (c *Config) Disable(checks ...string) {
	c.DisabledChecks = append(c.DisabledChecks, checks...)
	c.index()
}

func (c *Config) index() {
	c.disabled = make(map[string]bool, len(c.DisabledChecks))
	for _, check := range c.DisabledChecks {
		c.disabled[check] = true
	}
}

// Enabled reports whether a check should run.
func (c *Config) Enabled(check string) bool {
	if c == nil || c.disabled == nil {
		return true
	}
	return !c.disabled[check]
}
