// Package config loads the datamapper settings file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default parser limits.
const (
	DefaultInitialDepth = 2
	DefaultFieldBudget  = 100
	DefaultLogLevel     = "info"
)

// Config is the root of the settings file.
type Config struct {
	Parser  Parser  `yaml:"parser"`
	Logging Logging `yaml:"logging"`
}

// Parser bounds the eager part of tree building.
type Parser struct {
	// InitialDepth is the depth to which the tree is always parsed.
	InitialDepth int `yaml:"initial_depth"`
	// FieldBudget is the number of nodes parsed beyond InitialDepth before
	// the parser stops expanding.
	FieldBudget int `yaml:"field_budget"`
}

// Logging selects the logger flavour.
type Logging struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config

	applyDefaults(&cfg)

	return &cfg
}

// LoadFile loads and parses a YAML settings file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.Parser.InitialDepth < 0 {
		return fmt.Errorf("parser.initial_depth must not be negative, got %d", c.Parser.InitialDepth)
	}

	if c.Parser.FieldBudget < 0 {
		return fmt.Errorf("parser.field_budget must not be negative, got %d", c.Parser.FieldBudget)
	}

	return nil
}

// applyDefaults fills in default values for optional fields. Zero limits
// are replaced as well; a config cannot ask for a root-only tree.
func applyDefaults(cfg *Config) {
	if cfg.Parser.InitialDepth == 0 {
		cfg.Parser.InitialDepth = DefaultInitialDepth
	}

	if cfg.Parser.FieldBudget == 0 {
		cfg.Parser.FieldBudget = DefaultFieldBudget
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
}
